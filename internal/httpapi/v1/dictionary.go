package v1

import (
	"net/http"

	"github.com/tinoosan/finboard/internal/dictionary"
	"github.com/tinoosan/finboard/internal/ledger"
)

// GET /v1/dictionary/categories?type=
func (s *Server) getCategoriesDictionary(w http.ResponseWriter, r *http.Request) {
	var t *ledger.TransactionType
	if ts := r.URL.Query().Get("type"); ts != "" {
		tt := ledger.TransactionType(ts)
		if !tt.Valid() {
			badRequest(w, "invalid type")
			return
		}
		t = &tt
	}
	// Build response grouped by type
	type categoryItem struct {
		Type       ledger.TransactionType   `json:"type"`
		Categories []dictionary.CategoryDef `json:"categories"`
	}
	out := struct {
		Items []categoryItem `json:"items"`
	}{Items: []categoryItem{}}
	for _, typ := range dictionary.Types {
		if t != nil && *t != typ {
			continue
		}
		out.Items = append(out.Items, categoryItem{Type: typ, Categories: dictionary.CategoriesFor(&typ)})
	}
	toJSON(w, http.StatusOK, out)
}

// GET /v1/dictionary/widgets
func (s *Server) getWidgetsDictionary(w http.ResponseWriter, r *http.Request) {
	toJSON(w, http.StatusOK, struct {
		Items        []dictionary.WidgetDef `json:"items"`
		DefaultOrder []string               `json:"default_order"`
	}{Items: dictionary.Widgets, DefaultOrder: dictionary.DefaultWidgetOrder()})
}
