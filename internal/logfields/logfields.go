package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeyBranch  = "branch"
	KeyVariant = "variant"
	KeyPath    = "path"
	KeyPattern = "pattern"
	KeyOpID    = "op_id"
	KeyCount   = "count"
	KeyError   = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Branch(b string) slog.Attr  { return slog.String(KeyBranch, b) }
func Variant(v string) slog.Attr { return slog.String(KeyVariant, v) }
func Path(p string) slog.Attr    { return slog.String(KeyPath, p) }
func Pattern(p string) slog.Attr { return slog.String(KeyPattern, p) }
func OpID(id string) slog.Attr   { return slog.String(KeyOpID, id) }
func Count(n int) slog.Attr      { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
