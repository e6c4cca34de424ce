package ddl

import "testing"

func TestDeriveTableName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		path string
		want string
	}{
		{path: "/data/My Report (v2)@x.csv", want: "My_Report_v2x"},
		{path: "O'Neil list.txt", want: "ONeil_list"},
		{path: `orders.csv`, want: "orders"},
		{path: "noext", want: "noext"},
		{path: "daily.2024.csv", want: "daily.2024"},
		{path: "/in/archive.csv.gz", want: "archive"},
		{path: "/in/archive.CSV.ZST", want: "archive"},
		{path: "/in/(@').csv", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.path, func(t *testing.T) {
			t.Parallel()

			if got := DeriveTableName(tt.path); got != tt.want {
				t.Fatalf("DeriveTableName(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}

func TestColumnName(t *testing.T) {
	t.Parallel()

	if got := ColumnName("first name here"); got != "first_name_here" {
		t.Fatalf("ColumnName = %q", got)
	}
}
