package classify

import "context"

// FileSource serves the reference table from a local file, for deployments
// without a database-managed table.
type FileSource struct {
	Path string
}

func (f FileSource) ListEntries(_ context.Context) ([]Entry, error) {
	return LoadTable(f.Path)
}
