package handler

import (
	"mime/multipart"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/service"
)

// formUpload opens one multipart file field as a service upload. Returns
// (nil, noop, nil) when the field is absent; the caller decides whether that
// is an error. The returned closer must run after the service call.
func formUpload(c *fiber.Ctx, field string) (*service.FileUpload, func(), error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return nil, func() {}, nil
	}
	return openUpload(fh)
}

// formUploads opens every file submitted under one multipart field.
func formUploads(c *fiber.Ctx, field string) ([]service.FileUpload, func(), error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, func() {}, nil
	}

	var closers []func()
	closeAll := func() {
		for _, fn := range closers {
			fn()
		}
	}

	uploads := make([]service.FileUpload, 0, len(form.File[field]))
	for _, fh := range form.File[field] {
		up, closeFn, err := openUpload(fh)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, closeFn)
		uploads = append(uploads, *up)
	}
	return uploads, closeAll, nil
}

func openUpload(fh *multipart.FileHeader) (*service.FileUpload, func(), error) {
	f, err := fh.Open()
	if err != nil {
		return nil, func() {}, err
	}
	ct := fh.Header.Get("Content-Type")
	if ct == "" {
		ct = "application/octet-stream"
	}
	closeFn := func() { f.Close() }
	return &service.FileUpload{
		Reader:      f,
		Filename:    fh.Filename,
		ContentType: ct,
		Size:        fh.Size,
	}, closeFn, nil
}

// formFloat parses a form value as float64; empty input yields the zero value.
func formFloat(c *fiber.Ctx, field string) (float64, error) {
	v := c.FormValue(field)
	if v == "" {
		return 0, nil
	}
	return strconv.ParseFloat(v, 64)
}

// formTime parses a form value as RFC 3339; empty input yields the zero time.
func formTime(c *fiber.Ctx, field string) (time.Time, error) {
	v := c.FormValue(field)
	if v == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, v)
}
