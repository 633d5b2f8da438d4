package slug

import "testing"

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Alimentação":         "alimentacao",
		"Pagamento de Fatura": "pagamento-de-fatura",
		"  Saúde & Bem-estar ": "saude-bem-estar",
		"Minhas Contas":       "minhas-contas",
		"":                    "",
	}
	for in, want := range cases {
		if got := Slugify(in); got != want {
			t.Errorf("Slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsSlug(t *testing.T) {
	for _, ok := range []string{"gastos-mes", "faturas", "a1"} {
		if !IsSlug(ok) {
			t.Errorf("expected %q to be a slug", ok)
		}
	}
	for _, bad := range []string{"x", "Gastos", "gastos_mes", "../etc", ""} {
		if IsSlug(bad) {
			t.Errorf("expected %q not to be a slug", bad)
		}
	}
}
