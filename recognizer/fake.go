package recognizer

import "context"

// Fake returns canned outcomes for tests. With Err set, every call fails
// with it; otherwise responses are consumed from Texts in order, repeating
// the last entry when exhausted.
type Fake struct {
	Texts []string
	Err   error
	lang  string

	Calls int
}

func NewFake(texts []string, err error) *Fake {
	return &Fake{Texts: texts, Err: err}
}

func (f *Fake) Name() string            { return "fake" }
func (f *Fake) SetLanguage(lang string) { f.lang = lang }
func (f *Fake) GetLanguage() string     { return f.lang }

func (f *Fake) Recognize(ctx context.Context, _ []byte) (Result, error) {
	f.Calls++
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if f.Err != nil {
		return Result{}, f.Err
	}
	if len(f.Texts) == 0 {
		return Result{}, ErrNoSpeech
	}
	idx := f.Calls - 1
	if idx >= len(f.Texts) {
		idx = len(f.Texts) - 1
	}
	return Result{Text: f.Texts[idx], Confidence: 0.9}, nil
}
