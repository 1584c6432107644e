package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dejargonizer/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestTranslator(handler http.HandlerFunc) (*GoogleTranslator, *httptest.Server) {
	srv := httptest.NewServer(handler)
	tr := NewGoogleTranslator(&config.TranslatorConfig{
		Endpoint:       srv.URL,
		RequestTimeout: 5 * time.Second,
	}, zap.NewNop())
	return tr, srv
}

func TestGoogleTranslator_ConcatenatesSegments(t *testing.T) {
	tr, srv := newTestTranslator(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "gtx", r.URL.Query().Get("client"))
		assert.Equal(t, "auto", r.URL.Query().Get("sl"))
		assert.Equal(t, "es", r.URL.Query().Get("tl"))
		assert.Equal(t, "Hello world. How are you?", r.URL.Query().Get("q"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[[["Hola mundo. ","Hello world. ",null,null,3],["¿Cómo estás?","How are you?",null,null,3]],null,"en"]`))
	})
	defer srv.Close()

	out, err := tr.Translate(context.Background(), "Hello world. How are you?", "es")

	require.NoError(t, err)
	assert.Equal(t, "Hola mundo. ¿Cómo estás?", out)
}

func TestGoogleTranslator_NonOKStatus(t *testing.T) {
	tr, srv := newTestTranslator(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	defer srv.Close()

	_, err := tr.Translate(context.Background(), "text", "fr")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestGoogleTranslator_MalformedBody(t *testing.T) {
	tr, srv := newTestTranslator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	})
	defer srv.Close()

	_, err := tr.Translate(context.Background(), "text", "de")

	assert.Error(t, err)
}

func TestGoogleTranslator_EmptyTranslation(t *testing.T) {
	tr, srv := newTestTranslator(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[[],null,"en"]`))
	})
	defer srv.Close()

	_, err := tr.Translate(context.Background(), "text", "ru")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "no translation")
}
