package postgres

import "testing"

func TestSanitizeQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "parameterized query untouched",
			query: "SELECT id FROM users WHERE email = $1",
			want:  "SELECT id FROM users WHERE email = $1",
		},
		{
			name:  "string literal replaced",
			query: "SELECT id FROM users WHERE email = 'alice@example.com'",
			want:  "SELECT id FROM users WHERE email = '?'",
		},
		{
			name:  "escaped quote inside literal",
			query: "SELECT 1 FROM t WHERE name = 'O''Brien'",
			want:  "SELECT ? FROM t WHERE name = '?'",
		},
		{
			name:  "numeric literal replaced",
			query: "SELECT id FROM items WHERE group_id = 42",
			want:  "SELECT id FROM items WHERE group_id = ?",
		},
		{
			name:  "decimal literal replaced",
			query: "UPDATE valuations SET value = 1234.56",
			want:  "UPDATE valuations SET value = ?",
		},
		{
			name:  "identifier digits untouched",
			query: "SELECT col2 FROM t2 WHERE x = $12",
			want:  "SELECT col2 FROM t2 WHERE x = $12",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeQuery(tt.query); got != tt.want {
				t.Errorf("sanitizeQuery(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestExtractSQLVerb(t *testing.T) {
	tests := []struct {
		query string
		want  string
	}{
		{"SELECT * FROM users", "SELECT"},
		{"  insert into t values ($1)", "INSERT"},
		{"DELETE", "DELETE"},
	}

	for _, tt := range tests {
		if got := extractSQLVerb(tt.query); got != tt.want {
			t.Errorf("extractSQLVerb(%q) = %q, want %q", tt.query, got, tt.want)
		}
	}
}
