package biometric

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"NexusAssistant_VoiceProject/internal/models"
	"NexusAssistant_VoiceProject/internal/storage"

	"github.com/stretchr/testify/require"
)

// echoAnalyzer passes the live sample through unchanged so tests can
// control the characteristics string directly.
type echoAnalyzer struct {
	err error
}

func (e *echoAnalyzer) AnalyzeVoiceprint(_ context.Context, audioData string) (string, float64, error) {
	if e.err != nil {
		return "", 0, e.err
	}
	return audioData, 0.9, nil
}

func newTestAuthenticator(t *testing.T) (*Authenticator, *storage.Store, *echoAnalyzer) {
	t.Helper()
	store, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	analyzer := &echoAnalyzer{}
	return NewAuthenticator(store, analyzer), store, analyzer
}

func createUser(t *testing.T, store *storage.Store, username string) models.User {
	t.Helper()
	user, err := store.CreateUser(username, "x", "")
	require.NoError(t, err)
	return user
}

func TestAuthenticateByVoiceMatch(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	_, err := store.CreateBiometricProfile(user.ID, "deep resonant slow cadence", "")
	require.NoError(t, err)

	result := auth.AuthenticateByVoice(context.Background(), "deep resonant slow cadence")
	require.True(t, result.Success)
	require.Equal(t, MethodVoice, result.Method)
	require.Equal(t, user.ID, result.User.ID)
	require.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestAuthenticateByVoiceThresholdIsStrict(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	// live has 7 of the profile's 10 words: similarity exactly 0.7,
	// which must not clear the > 0.7 threshold
	profile := "w1 w2 w3 w4 w5 w6 w7 w8 w9 w10"
	live := "w1 w2 w3 w4 w5 w6 w7"
	_, err := store.CreateBiometricProfile(user.ID, profile, "")
	require.NoError(t, err)

	result := auth.AuthenticateByVoice(context.Background(), live)
	require.False(t, result.Success)
	require.Zero(t, result.Confidence)
	require.Nil(t, result.User)
}

func TestAuthenticateByVoiceNoProfiles(t *testing.T) {
	auth, _, _ := newTestAuthenticator(t)

	result := auth.AuthenticateByVoice(context.Background(), "anything at all")
	require.False(t, result.Success)
	require.Zero(t, result.Confidence)
}

func TestAuthenticateByVoiceAnalyzerFailure(t *testing.T) {
	auth, store, analyzer := newTestAuthenticator(t)
	user := createUser(t, store, "alice")
	_, err := store.CreateBiometricProfile(user.ID, "alpha beta", "")
	require.NoError(t, err)

	analyzer.err = errors.New("upstream unavailable")
	result := auth.AuthenticateByVoice(context.Background(), "alpha beta")
	require.False(t, result.Success)
	require.Zero(t, result.Confidence)
}

func TestAuthenticateTieBreakFirstProfileWins(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	first := createUser(t, store, "first")
	second := createUser(t, store, "second")

	// identical voiceprints: both score 1.0 against the probe, and the
	// earliest-created profile must win deterministically
	_, err := store.CreateBiometricProfile(first.ID, "alpha beta", "")
	require.NoError(t, err)
	_, err = store.CreateBiometricProfile(second.ID, "alpha beta", "")
	require.NoError(t, err)

	result := auth.AuthenticateByVoice(context.Background(), "alpha beta")
	require.True(t, result.Success)
	require.Equal(t, first.ID, result.User.ID)
}

func TestReEnrollmentTieBreakKeepsEarliestProfile(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	// Re-enrollment inserts a second row rather than updating; both
	// rows score equally against the probe and the scan must settle on
	// the earliest one.
	profileA, err := auth.Enroll(context.Background(), user.ID, "alpha beta", "")
	require.NoError(t, err)
	profileB, err := auth.Enroll(context.Background(), user.ID, "alpha beta", "")
	require.NoError(t, err)
	require.Less(t, profileA.ID, profileB.ID)

	profiles, err := store.ActiveBiometricProfiles()
	require.NoError(t, err)
	require.Len(t, profiles, 2)

	result := auth.AuthenticateByVoice(context.Background(), "alpha beta")
	require.True(t, result.Success)
	require.Equal(t, user.ID, result.User.ID)
}

func TestAuthenticateByFaceMatch(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	_, err := store.CreateBiometricProfile(user.ID, "", "[0.5, 0.5, 0.5]")
	require.NoError(t, err)

	result := auth.AuthenticateByFace(context.Background(), "[0.5, 0.5, 0.5]")
	require.True(t, result.Success)
	require.Equal(t, MethodFace, result.Method)
	require.Equal(t, user.ID, result.User.ID)
}

func TestMalformedProfileDoesNotAbortScan(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	broken := createUser(t, store, "broken")
	valid := createUser(t, store, "valid")

	_, err := store.CreateBiometricProfile(broken.ID, "", "garbage-not-json")
	require.NoError(t, err)
	_, err = store.CreateBiometricProfile(valid.ID, "", "[0.1, 0.2]")
	require.NoError(t, err)

	result := auth.AuthenticateByFace(context.Background(), "[0.1, 0.2]")
	require.True(t, result.Success)
	require.Equal(t, valid.ID, result.User.ID)
}

func TestAuthenticateCombinedSameUser(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	_, err := store.CreateBiometricProfile(user.ID, "alpha beta gamma", "[0.5, 0.5]")
	require.NoError(t, err)

	result := auth.AuthenticateCombined(context.Background(), "alpha beta gamma", "[0.5, 0.5]")
	require.True(t, result.Success)
	require.Equal(t, MethodCombined, result.Method)
	require.Equal(t, user.ID, result.User.ID)
	require.InDelta(t, 1.0, result.Confidence, 1e-9)
}

func TestAuthenticateCombinedDifferentUsersFails(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	voiceUser := createUser(t, store, "voice-user")
	faceUser := createUser(t, store, "face-user")

	// voice resolves to one user, face to another; both individually
	// clear their thresholds but combined must fail with confidence 0
	_, err := store.CreateBiometricProfile(voiceUser.ID, "alpha beta gamma", "")
	require.NoError(t, err)
	_, err = store.CreateBiometricProfile(faceUser.ID, "", "[0.3, 0.3]")
	require.NoError(t, err)

	result := auth.AuthenticateCombined(context.Background(), "alpha beta gamma", "[0.3, 0.3]")
	require.False(t, result.Success)
	require.Zero(t, result.Confidence)
	require.Nil(t, result.User)
}

func TestAuthenticateCombinedOneModalityFails(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	_, err := store.CreateBiometricProfile(user.ID, "alpha beta gamma", "[0.5, 0.5]")
	require.NoError(t, err)

	result := auth.AuthenticateCombined(context.Background(), "alpha beta gamma", "[200, 200]")
	require.False(t, result.Success)
	require.Zero(t, result.Confidence)
}

func TestEnrollWithoutSamples(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	profile, err := auth.Enroll(context.Background(), user.ID, "", "")
	require.NoError(t, err)
	require.Equal(t, user.ID, profile.UserID)
	require.Empty(t, profile.Voiceprint)
	require.Empty(t, profile.FaceEncoding)

	// an empty profile never matches anything
	result := auth.AuthenticateByVoice(context.Background(), "anything")
	require.False(t, result.Success)
	result = auth.AuthenticateByFace(context.Background(), "[1, 2]")
	require.False(t, result.Success)
}

func TestEnrollRejectsOversizedFaceEncoding(t *testing.T) {
	auth, store, _ := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	vec := make([]float64, models.MaxFaceEncodingFeatures+1)
	encoded, err := json.Marshal(vec)
	require.NoError(t, err)

	_, err = auth.Enroll(context.Background(), user.ID, "", string(encoded))
	require.Error(t, err)
	require.True(t, strings.Contains(err.Error(), "feature limit"))
}

func TestEnrollAnalyzerFailureSurfaces(t *testing.T) {
	auth, store, analyzer := newTestAuthenticator(t)
	user := createUser(t, store, "alice")

	analyzer.err = errors.New("boom")
	_, err := auth.Enroll(context.Background(), user.ID, "some audio", "")
	require.Error(t, err)
}
