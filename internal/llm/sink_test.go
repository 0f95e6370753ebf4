package llm

import (
	"bytes"
	"testing"
)

func TestMultiSinkSkipsNil(t *testing.T) {
	var got []string
	collect := TokenSinkFunc(func(chunk string) { got = append(got, chunk) })
	var buf bytes.Buffer

	sink := MultiSink(nil, collect, NewConsoleSink(&buf))
	sink.OnToken("Hel")
	sink.OnToken("lo")

	if len(got) != 2 || got[0] != "Hel" || got[1] != "lo" {
		t.Fatalf("unexpected chunks %v", got)
	}
	if buf.String() != "Hello" {
		t.Fatalf("unexpected console output %q", buf.String())
	}
}

func TestOptionsSinkNeverNil(t *testing.T) {
	Options{}.Sink().OnToken("ignored")
}

func TestValidateOptions(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "ok", opts: Options{Model: "llama3.2", Temperature: 0.3}},
		{name: "bounds", opts: Options{Model: "m", Temperature: 1}},
		{name: "missing model", opts: Options{Model: " "}, wantErr: true},
		{name: "negative temp", opts: Options{Model: "m", Temperature: -0.1}, wantErr: true},
		{name: "high temp", opts: Options{Model: "m", Temperature: 1.1}, wantErr: true},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOptions(tt.opts)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateOptions() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
