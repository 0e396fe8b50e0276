package nav

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lexiquiz/internal/quiz"
	"github.com/abhisek/lexiquiz/internal/session"
)

var t0 = time.Unix(1000, 0)

func testMaterial() quiz.Material {
	return quiz.Material{ID: "m1", Name: "Unit 1"}
}

func testSession(t *testing.T) *session.Session {
	t.Helper()
	s, err := session.New(quiz.Config{Quantity: 5}, []quiz.Question{
		{ID: 1, Type: quiz.TypeTrueFalse, Text: "x", Options: []string{"true", "false"}, CorrectAnswer: "true"},
	}, t0)
	require.NoError(t, err)
	return s
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, Dashboard, s.Screen)
	assert.Nil(t, s.PendingConfig)
	assert.Nil(t, s.ActiveSession)
}

func TestStartConfig(t *testing.T) {
	s := StartConfig(Navigate(Initial(), Library), testMaterial())

	assert.Equal(t, Config, s.Screen)
	require.NotNil(t, s.PendingConfig)
	assert.Equal(t, "m1", s.PendingConfig.MaterialID)
	assert.Equal(t, quiz.DefaultQuantity, s.PendingConfig.Quantity)
	assert.Equal(t, quiz.TypeMixed, s.PendingConfig.Type)
}

func TestUpdateConfig(t *testing.T) {
	s := StartConfig(Initial(), testMaterial())
	cfg := *s.PendingConfig
	cfg.Quantity = 30

	next := UpdateConfig(s, cfg)
	assert.Equal(t, 30, next.PendingConfig.Quantity)
	assert.Equal(t, quiz.DefaultQuantity, s.PendingConfig.Quantity, "old state is not modified")
}

func TestQuizLifecycle(t *testing.T) {
	sess := testSession(t)
	s := StartQuiz(StartConfig(Initial(), testMaterial()), sess)
	assert.Equal(t, Quiz, s.Screen)
	assert.Same(t, sess, s.ActiveSession)

	_, _ = sess.Advance(t0.Add(time.Minute))
	s = FinishQuiz(s, sess)
	assert.Equal(t, Results, s.Screen)

	retried := Retry(s, t0.Add(time.Hour))
	assert.Equal(t, Quiz, retried.Screen)
	require.NotNil(t, retried.ActiveSession)
	assert.NotSame(t, sess, retried.ActiveSession)
	assert.False(t, retried.ActiveSession.Finished())
	assert.True(t, retried.ActiveSession.StartTime.Equal(t0.Add(time.Hour)))

	home := Home(retried)
	assert.Equal(t, Dashboard, home.Screen)
	assert.Nil(t, home.ActiveSession)
	assert.Nil(t, home.PendingConfig)
}

func TestRetryWithoutSession(t *testing.T) {
	s := Navigate(Initial(), Results)
	assert.Equal(t, s, Retry(s, t0))
}

func TestBack(t *testing.T) {
	sess := testSession(t)
	tests := []struct {
		name string
		from State
		want Screen
	}{
		{"config to library", StartConfig(Initial(), testMaterial()), Library},
		{"quiz to dashboard", StartQuiz(Initial(), sess), Dashboard},
		{"results to dashboard", FinishQuiz(Initial(), sess), Dashboard},
		{"library to dashboard", Navigate(Initial(), Library), Dashboard},
		{"profile to dashboard", Navigate(Initial(), Profile), Dashboard},
		{"statistics to dashboard", Navigate(Initial(), Statistics), Dashboard},
		{"dashboard stays", Initial(), Dashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Back(tt.from)
			assert.Equal(t, tt.want, got.Screen)
			if tt.from.Screen == Quiz || tt.from.Screen == Results {
				assert.Nil(t, got.ActiveSession)
			}
			if tt.from.Screen == Config {
				assert.Nil(t, got.PendingConfig)
			}
		})
	}
}

func TestResolve(t *testing.T) {
	sess := testSession(t)

	v, err := Resolve(StartConfig(Initial(), testMaterial()))
	require.NoError(t, err)
	assert.Equal(t, Config, v.Screen)
	assert.NotNil(t, v.Config)

	v, err = Resolve(StartQuiz(Initial(), sess))
	require.NoError(t, err)
	assert.Same(t, sess, v.Session)

	for _, screen := range []Screen{Dashboard, Library, Profile, Statistics} {
		_, err := Resolve(Navigate(Initial(), screen))
		assert.NoError(t, err, screen.String())
	}
}

func TestResolve_MissingContext(t *testing.T) {
	for _, screen := range []Screen{Config, Quiz, Results} {
		_, err := Resolve(Navigate(Initial(), screen))
		assert.ErrorIs(t, err, ErrMissingContext, screen.String())
	}
}

func TestScreenString(t *testing.T) {
	assert.Equal(t, "quiz", Quiz.String())
	assert.Equal(t, "unknown", Screen(42).String())
}
