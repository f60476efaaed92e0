package voice

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type events struct {
	mu       sync.Mutex
	statuses []string
	results  []string
}

func (e *events) handlers() Handlers {
	return Handlers{
		OnResult: func(s string) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.results = append(e.results, s)
		},
		OnStatus: func(text string, _ bool) {
			e.mu.Lock()
			defer e.mu.Unlock()
			e.statuses = append(e.statuses, text)
		},
	}
}

func stubLookPath(t *testing.T, err error) {
	t.Helper()
	orig := lookPath
	lookPath = func(file string) (string, error) {
		if err != nil {
			return "", err
		}
		return "/usr/bin/" + file, nil
	}
	t.Cleanup(func() { lookPath = orig })
}

func stubRun(t *testing.T, fn func(ctx context.Context, name string, args ...string) ([]byte, error)) {
	t.Helper()
	orig := runCommand
	runCommand = fn
	t.Cleanup(func() { runCommand = orig })
}

func TestNew_Unsupported(t *testing.T) {
	_, ok := New(Options{}, Handlers{})
	require.False(t, ok)

	stubLookPath(t, errors.New("not found"))
	_, ok = New(Options{Command: []string{"whisper-listen"}}, Handlers{})
	require.False(t, ok)
}

func TestStart_ResultWrittenAndStatusSequence(t *testing.T) {
	stubLookPath(t, nil)
	var gotArgs []string
	stubRun(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = append([]string{name}, args...)
		return []byte("\n  Albert Einstein  \nsecond guess\n"), nil
	})

	ev := &events{}
	r, ok := New(Options{Command: []string{"listen", "--lang", "{locale}"}}, ev.handlers())
	require.True(t, ok)

	require.NoError(t, r.Start(context.Background()))
	r.(*commandRecognizer).wait()

	require.Equal(t, []string{"/usr/bin/listen", "--lang", "en-US"}, gotArgs)
	require.Equal(t, []string{"Albert Einstein"}, ev.results)
	require.Equal(t, []string{StatusListening, `Heard: "Albert Einstein"`, ""}, ev.statuses)
	require.False(t, r.Listening())
}

func TestStart_CustomLocale(t *testing.T) {
	stubLookPath(t, nil)
	var gotArgs []string
	stubRun(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		gotArgs = args
		return []byte("x"), nil
	})

	r, ok := New(Options{Command: []string{"listen", "-l={locale}"}, Locale: "fr-FR"}, Handlers{})
	require.True(t, ok)
	require.NoError(t, r.Start(context.Background()))
	r.(*commandRecognizer).wait()
	require.Equal(t, []string{"-l=fr-FR"}, gotArgs)
}

func TestStart_CommandError(t *testing.T) {
	stubLookPath(t, nil)
	stubRun(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return nil, errors.New("audio-capture")
	})

	ev := &events{}
	r, _ := New(Options{Command: []string{"listen"}}, ev.handlers())
	require.NoError(t, r.Start(context.Background()))
	r.(*commandRecognizer).wait()

	require.Empty(t, ev.results)
	require.Equal(t, []string{StatusListening, "Voice error: audio-capture", ""}, ev.statuses)
	require.False(t, r.Listening())
}

func TestStart_NoSpeech(t *testing.T) {
	stubLookPath(t, nil)
	stubRun(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		return []byte("   \n"), nil
	})

	ev := &events{}
	r, _ := New(Options{Command: []string{"listen"}}, ev.handlers())
	require.NoError(t, r.Start(context.Background()))
	r.(*commandRecognizer).wait()

	require.Empty(t, ev.results)
	require.Equal(t, "Voice error: no-speech", ev.statuses[1])
}

func TestStart_WhileListeningIgnored_StopAborts(t *testing.T) {
	stubLookPath(t, nil)
	var calls int
	var mu sync.Mutex
	started := make(chan struct{})
	stubRun(t, func(ctx context.Context, name string, args ...string) ([]byte, error) {
		mu.Lock()
		calls++
		mu.Unlock()
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	})

	ev := &events{}
	r, _ := New(Options{Command: []string{"listen"}}, ev.handlers())
	ctx := context.Background()

	require.NoError(t, r.Start(ctx))
	<-started
	require.True(t, r.Listening())
	require.NoError(t, r.Start(ctx))

	r.Stop()
	r.(*commandRecognizer).wait()

	mu.Lock()
	require.Equal(t, 1, calls)
	mu.Unlock()
	require.False(t, r.Listening())
	require.Empty(t, ev.results)
	require.Equal(t, []string{StatusListening, ""}, ev.statuses)
}

func TestStop_WhenIdleIsNoop(t *testing.T) {
	stubLookPath(t, nil)
	r, _ := New(Options{Command: []string{"listen"}}, Handlers{})
	r.Stop()
	require.False(t, r.Listening())
}
