package backend

import (
	"bytes"
	"fmt"
	"mime/multipart"

	"github.com/article-avenue/avenue-cli/internal/core/domain"
	"github.com/article-avenue/avenue-cli/internal/core/ports/driven"
	"github.com/article-avenue/avenue-cli/internal/rawdoc"
)

// formBody is an encoded multipart form ready to send.
type formBody struct {
	data        []byte
	contentType string
}

// buildArticleForm encodes an article submission. Create calls carry
// the username; updates target by id and omit it. The thumbnail is a
// tagged optional: new bytes become a file part, a stored path becomes
// a string field, and an absent thumbnail sends an empty field the way
// the editor always has.
func buildArticleForm(p driven.ArticlePayload, withUsername bool) (*formBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	contents, err := encodeDoc(p.Body)
	if err != nil {
		return nil, fmt.Errorf("encode contents: %w", err)
	}
	description, err := encodeDoc(p.Description)
	if err != nil {
		return nil, fmt.Errorf("encode description: %w", err)
	}

	fields := map[string]string{
		"contents":    contents,
		"title":       p.Title,
		"category":    string(p.Category),
		"filename":    p.Thumbnail.Filename,
		"description": description,
	}
	if withUsername {
		fields["username"] = p.Username
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if err := writeThumbnail(w, p.Thumbnail); err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}
	return &formBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

// buildSignUpForm encodes a registration submission.
func buildSignUpForm(r domain.SignUpRequest) (*formBody, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":        r.Name,
		"email":       r.Email,
		"password":    r.Password,
		"username":    r.Username,
		"author_desc": r.AuthorDesc,
	}
	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, fmt.Errorf("write field %s: %w", name, err)
		}
	}

	if len(r.ProfilePic) > 0 {
		if err := w.WriteField("filename", r.Filename); err != nil {
			return nil, fmt.Errorf("write field filename: %w", err)
		}
		fw, err := w.CreateFormFile("profile_pic", r.Filename)
		if err != nil {
			return nil, fmt.Errorf("create profile_pic part: %w", err)
		}
		if _, err := fw.Write(r.ProfilePic); err != nil {
			return nil, fmt.Errorf("write profile_pic: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close form: %w", err)
	}
	return &formBody{data: buf.Bytes(), contentType: w.FormDataContentType()}, nil
}

func encodeDoc(d *domain.Document) (string, error) {
	if d == nil {
		d = domain.NewDocument()
	}
	data, err := rawdoc.Encode(d)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func writeThumbnail(w *multipart.Writer, t domain.Thumbnail) error {
	switch {
	case len(t.File) > 0:
		fw, err := w.CreateFormFile("thumbnail", t.Filename)
		if err != nil {
			return fmt.Errorf("create thumbnail part: %w", err)
		}
		if _, err := fw.Write(t.File); err != nil {
			return fmt.Errorf("write thumbnail: %w", err)
		}
	case t.Path != "":
		if err := w.WriteField("thumbnail", t.Path); err != nil {
			return fmt.Errorf("write thumbnail path: %w", err)
		}
	default:
		if err := w.WriteField("thumbnail", ""); err != nil {
			return fmt.Errorf("write empty thumbnail: %w", err)
		}
	}
	return nil
}
