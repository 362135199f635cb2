package export

import "github.com/termpro2000/fdapp/internal/application/dto"

// Table is one named grid of pre-formatted cells. All coercion to display
// strings happens in the usecase; renderers only lay the values out.
type Table struct {
	Name    string
	Headers []string
	Rows    [][]string
}

// TableSet is the full content of one export. Multi-sheet formats render
// every table; single-table formats (csv) render the first.
type TableSet struct {
	Tables []Table
}

// Renderer turns a TableSet into a downloadable byte stream.
type Renderer interface {
	Render(ts TableSet) ([]byte, error)
	ContentType() string
	Extension() string
}

// ActivityRecorder is the audit-trail port, same contract as in the shipping
// engine: best effort, never fails the export.
type ActivityRecorder interface {
	Record(actorID, action, targetType, targetID string, details map[string]any, meta dto.RequestMeta)
}
