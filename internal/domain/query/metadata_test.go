package query

import (
	"strings"
	"testing"
)

func TestNewMetadata(t *testing.T) {
	md, err := NewMetadata(
		[]string{"email", "first_name"},
		map[string]FieldType{"role_id": FieldInteger, "is_active": FieldBoolean},
		[]string{"id", "email", "created_at"},
		DefaultSort{Field: "id", Order: Asc},
	)
	if err != nil {
		t.Fatalf("NewMetadata: %v", err)
	}

	if !md.IsSortable("email") || md.IsSortable("role_id") {
		t.Error("sortable membership wrong")
	}
	if !md.IsFilterable("role_id") || md.IsFilterable("email") {
		t.Error("filterable membership wrong")
	}
	if ft, ok := md.FilterType("is_active"); !ok || ft != FieldBoolean {
		t.Errorf("FilterType(is_active) = %v, %v", ft, ok)
	}
	if ds := md.DefaultSort(); ds.Field != "id" || ds.Order != Asc {
		t.Errorf("DefaultSort = %+v", ds)
	}
}

func TestNewMetadata_Errors(t *testing.T) {
	tests := []struct {
		name     string
		sortable []string
		defaults DefaultSort
		filters  map[string]FieldType
		wantSub  string
	}{
		{
			name:     "empty sortable",
			sortable: nil,
			defaults: DefaultSort{Field: "id", Order: Asc},
			wantSub:  "sortable field list is required",
		},
		{
			name:     "default not sortable",
			sortable: []string{"id"},
			defaults: DefaultSort{Field: "name", Order: Asc},
			wantSub:  "not sortable",
		},
		{
			name:     "bad default order",
			sortable: []string{"id"},
			defaults: DefaultSort{Field: "id", Order: "ascending"},
			wantSub:  "not asc or desc",
		},
		{
			name:     "bad filter type",
			sortable: []string{"id"},
			defaults: DefaultSort{Field: "id", Order: Asc},
			filters:  map[string]FieldType{"count": "decimal"},
			wantSub:  "unknown type",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewMetadata(nil, tt.filters, tt.sortable, tt.defaults)
			if err == nil {
				t.Fatal("want error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantSub) {
				t.Errorf("error %q does not contain %q", err.Error(), tt.wantSub)
			}
		})
	}
}

func TestMustMetadata_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic, got none")
		}
	}()
	MustMetadata(nil, nil, nil, DefaultSort{})
}

func TestMetadata_CloneIsolation(t *testing.T) {
	sortable := []string{"id", "name"}
	md := MustMetadata(nil, nil, sortable, DefaultSort{Field: "id", Order: Asc})
	sortable[1] = "mutated"
	if md.IsSortable("mutated") || !md.IsSortable("name") {
		t.Error("metadata shares the caller's slice")
	}
}

func TestParseOp(t *testing.T) {
	for _, s := range []string{"eq", "ne", "gt", "gte", "lt", "lte"} {
		op, ok := ParseOp(s)
		if !ok || !op.IsValid() {
			t.Errorf("ParseOp(%q) = %v, %v", s, op, ok)
		}
	}
	if _, ok := ParseOp("like"); ok {
		t.Error("ParseOp(like): want false")
	}
	if Op("bogus").Symbol() != "" {
		t.Error("unknown op symbol should be empty")
	}
	if OpGte.Symbol() != ">=" || OpNe.Symbol() != "<>" {
		t.Error("symbol mapping wrong")
	}
}

func TestOrder(t *testing.T) {
	if !Asc.IsValid() || !Desc.IsValid() || Order("up").IsValid() {
		t.Error("order validity wrong")
	}
	if Asc.SQL() != "ASC" || Desc.SQL() != "DESC" {
		t.Error("order SQL keyword wrong")
	}
}
