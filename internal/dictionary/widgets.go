package dictionary

// WidgetDef is a dashboard widget the layout preferences can order or hide.
type WidgetDef struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// Widgets is the dashboard's widget set in default order.
var Widgets = []WidgetDef{
	{ID: "minhas-contas", Label: "Minhas Contas"},
	{ID: "meus-cartoes", Label: "Meus Cartões"},
	{ID: "gastos-mes", Label: "Gráfico de Gastos"},
	{ID: "limite-gastos", Label: "Teto de Gastos"},
	{ID: "faturas", Label: "Faturas"},
}

// DefaultWidgetOrder returns the widget ids in default order.
func DefaultWidgetOrder() []string {
	out := make([]string, len(Widgets))
	for i, w := range Widgets {
		out[i] = w.ID
	}
	return out
}

// IsWidget reports whether id names a known widget.
func IsWidget(id string) bool {
	for _, w := range Widgets {
		if w.ID == id {
			return true
		}
	}
	return false
}
