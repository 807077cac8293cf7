package openai

import "testing"

func TestNewClientValidation(t *testing.T) {
	tests := []struct {
		name    string
		apiKey  string
		model   string
		wantErr bool
	}{
		{name: "ok", apiKey: "sk-test", model: "gpt-4o-mini", wantErr: false},
		{name: "missing key", apiKey: "", model: "gpt-4o-mini", wantErr: true},
		{name: "missing model", apiKey: "sk-test", model: "", wantErr: true},
		{name: "blank model", apiKey: "sk-test", model: "   ", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.apiKey, tt.model)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewClient(%q, %q) err = %v, wantErr %v", tt.apiKey, tt.model, err, tt.wantErr)
			}
		})
	}
}
