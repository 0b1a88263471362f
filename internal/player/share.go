package player

import (
	"net/url"

	"github.com/mkolarik/sayso/internal/language"
)

// ShareState is the slice of controller state a share URL carries. It is a
// projection, regenerated on demand, never stored.
type ShareState struct {
	Text     string
	Language string
	AutoPlay bool
}

// BuildShareURL serializes state onto base as text/lang/auto query
// parameters. Pure and deterministic; ParseShareURL reverses it.
func BuildShareURL(base string, st ShareState) string {
	auto := "false"
	if st.AutoPlay {
		auto = "true"
	}

	q := url.Values{}
	q.Set("text", st.Text)
	q.Set("lang", st.Language)
	q.Set("auto", auto)
	return base + "?" + q.Encode()
}

// ParseShareURL extracts the text/lang/auto query parameters from a share
// URL. An unknown lang code is dropped (Language stays empty, keeping the
// receiver's default); auto is true only for the literal "true".
func ParseShareURL(raw string) (ShareState, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return ShareState{}, err
	}

	q := u.Query()
	st := ShareState{
		Text:     q.Get("text"),
		AutoPlay: q.Get("auto") == "true",
	}
	if lang := q.Get("lang"); language.Known(lang) {
		st.Language = lang
	}
	return st, nil
}
