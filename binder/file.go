package binder

import (
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"reflect"
)

// FileUpload is an uploaded file held in memory.
type FileUpload struct {
	Filename string
	Size     int64
	Header   textproto.MIMEHeader
	Content  []byte
}

// ContentType returns the part's media type, falling back to the file
// extension.
func (f *FileUpload) ContentType() string {
	if ct := f.Header.Get("Content-Type"); ct != "" {
		mt, _, _ := mime.ParseMediaType(ct)
		return mt
	}
	return mime.TypeByExtension(filepath.Ext(f.Filename))
}

var (
	uploadType    = reflect.TypeOf(FileUpload{})
	uploadPtrType = reflect.TypeOf(&FileUpload{})
)

// File binds multipart file parts into fields tagged `file:"name"` of type
// FileUpload or *FileUpload. Non-multipart requests return
// ErrBinderNotApplicable.
//
// Browsers submit an empty file input as a part without a file name;
// net/http files such parts under form values, so they never reach a file
// field.
func File(opts ...Option) func(r *http.Request, v any) error {
	o := newOptions(opts)
	return func(r *http.Request, v any) error {
		if mediaType(r) != mimeMultipart {
			return ErrBinderNotApplicable
		}
		if err := parseMultipart(r, o.maxMemory); err != nil {
			return err
		}

		rv := reflect.ValueOf(v)
		if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
			return fmt.Errorf("%w: target must be a pointer to struct", ErrInvalidForm)
		}
		rv = rv.Elem()
		rt := rv.Type()

		for i := range rt.NumField() {
			sf := rt.Field(i)
			name := sf.Tag.Get("file")
			if name == "" || name == "-" || !rv.Field(i).CanSet() {
				continue
			}
			headers := r.MultipartForm.File[name]
			if len(headers) == 0 {
				continue
			}

			upload, err := readFileHeader(headers[0])
			if err != nil {
				return fmt.Errorf("%w: field %s: %v", ErrInvalidForm, sf.Name, err)
			}
			switch sf.Type {
			case uploadType:
				rv.Field(i).Set(reflect.ValueOf(*upload))
			case uploadPtrType:
				rv.Field(i).Set(reflect.ValueOf(upload))
			default:
				return fmt.Errorf("%w: field %s: unsupported type %s", ErrInvalidForm, sf.Name, sf.Type)
			}
		}
		return nil
	}
}

func readFileHeader(header *multipart.FileHeader) (*FileUpload, error) {
	f, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", header.Filename, err)
	}
	defer func() { _ = f.Close() }()

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", header.Filename, err)
	}
	return &FileUpload{
		Filename: header.Filename,
		Size:     int64(len(content)),
		Header:   header.Header,
		Content:  content,
	}, nil
}
