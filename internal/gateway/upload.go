package gateway

import (
	"errors"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
)

// FileField is the multipart field that carries the uploaded source file.
const FileField = "file"

// Upload is a file received in an analysis request. It lives only for the
// duration of that request.
type Upload struct {
	Filename string
	Data     []byte
}

// readUpload streams the multipart body and returns the first file part named
// field. A part without a filename parameter is an ordinary form value and does
// not count as a file; a part whose filename parameter is empty does, and is
// rejected as such.
func readUpload(r *http.Request, field string) (Upload, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		return Upload{}, newError(KindMissingFile, err)
	}

	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			return Upload{}, newError(KindMissingFile, nil)
		}
		if err != nil {
			return Upload{}, classifyBodyError(err, KindMissingFile)
		}

		if part.FormName() != field {
			continue
		}
		filename, isFile := partFilename(part)
		if !isFile {
			continue
		}
		if filename == "" {
			return Upload{}, newError(KindEmptyFilename, nil)
		}

		data, err := io.ReadAll(part)
		if err != nil {
			return Upload{}, classifyBodyError(err, KindFileRead)
		}
		return Upload{Filename: filename, Data: data}, nil
	}
}

// partFilename returns the raw filename parameter of the part's
// Content-Disposition and whether the parameter was present at all.
// multipart.Part.FileName cannot tell an empty filename from a missing one.
func partFilename(p *multipart.Part) (string, bool) {
	_, params, err := mime.ParseMediaType(p.Header.Get("Content-Disposition"))
	if err != nil {
		return "", false
	}
	name, ok := params["filename"]
	return name, ok
}

// classifyBodyError reports an exceeded upload limit as a read failure no
// matter where in the body it was hit.
func classifyBodyError(err error, fallback Kind) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return newError(KindFileRead, err)
	}
	return newError(fallback, err)
}
