package utils

import "testing"

func TestGenerateSlug(t *testing.T) {
	cases := []struct{ input, want string }{
		{"Missão e Valores", "missao-e-valores"},
		{"Bem-vindo à Altaviva Turismo", "bem-vindo-a-altaviva-turismo"},
		{"  Sobre Nós!  ", "sobre-nos"},
		{"Sáb: 9h às 13h", "sab-9h-as-13h"},
		{"***", ""},
	}

	for _, tc := range cases {
		if got := GenerateSlug(tc.input); got != tc.want {
			t.Fatalf("GenerateSlug(%q) = %q, want %q", tc.input, got, tc.want)
		}
	}
}
