package web

import (
	"fmt"
	"io/fs"
	"net/http"
)

// FileServer serves the dir subtree of static below path. Global middleware
// is not applied.
func (wh *WebHandler) FileServer(static fs.FS, dir string, path string) error {
	fSys, err := fs.Sub(static, dir)
	if err != nil {
		return fmt.Errorf("switching to static folder: %w", err)
	}

	fileServer := http.StripPrefix(path, http.FileServer(http.FS(fSys)))

	wh.mux.Handle(fmt.Sprintf("GET %s", path), fileServer)

	return nil
}
