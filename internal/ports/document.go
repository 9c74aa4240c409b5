package ports

import "pinball-hwbind/internal/types"

// DocumentPort loads the declarative machine configuration document.
type DocumentPort interface {
	LoadDocument(path string) (types.Document, error)
}
