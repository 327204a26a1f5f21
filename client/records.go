package client

import (
	"bytes"
	"context"
	"fmt"
	"folio/models"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

func (c *Client) ListProjects(ctx context.Context) ([]models.Project, error) {
	var resp models.ProjectsResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/projects"}, &resp); err != nil {
		return nil, err
	}
	return resp.Projects, nil
}

func (c *Client) CreateProject(ctx context.Context, in models.ProjectInput) (*models.Project, error) {
	var out models.Project
	if err := c.sendJSON(ctx, http.MethodPost, "/api/admin/projects", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateProject(ctx context.Context, id uuid.UUID, in models.ProjectInput) (*models.Project, error) {
	var out models.Project
	if err := c.sendJSON(ctx, http.MethodPut, "/api/admin/projects/"+id.String(), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteProject(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/admin/projects/" + id.String(), auth: true}, nil)
}

func (c *Client) ListSkills(ctx context.Context) ([]models.Skill, error) {
	var resp models.SkillsResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/skills"}, &resp); err != nil {
		return nil, err
	}
	return resp.Skills, nil
}

func (c *Client) CreateSkill(ctx context.Context, in models.SkillInput) (*models.Skill, error) {
	var out models.Skill
	if err := c.sendJSON(ctx, http.MethodPost, "/api/admin/skills", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) UpdateSkill(ctx context.Context, id uuid.UUID, in models.SkillInput) (*models.Skill, error) {
	var out models.Skill
	if err := c.sendJSON(ctx, http.MethodPut, "/api/admin/skills/"+id.String(), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DeleteSkill(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, request{method: http.MethodDelete, path: "/api/admin/skills/" + id.String(), auth: true}, nil)
}

func (c *Client) ListExperiences(ctx context.Context) ([]models.Experience, error) {
	var resp models.ExperiencesResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/experiences"}, &resp); err != nil {
		return nil, err
	}
	return resp.Experiences, nil
}

func (c *Client) ListEducation(ctx context.Context) ([]models.Education, error) {
	var resp models.EducationResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/education"}, &resp); err != nil {
		return nil, err
	}
	return resp.Education, nil
}

// ListContacts reads the contact inbox. Requires a session.
func (c *Client) ListContacts(ctx context.Context, limit, offset int) ([]models.Contact, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if offset > 0 {
		q.Set("offset", fmt.Sprint(offset))
	}
	path := "/api/admin/contacts"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp models.ContactsResponse
	if err := c.do(ctx, request{method: http.MethodGet, path: path, auth: true}, &resp); err != nil {
		return nil, err
	}
	return resp.Contacts, nil
}

// SubmitContact posts the public contact form. No session is needed.
func (c *Client) SubmitContact(ctx context.Context, in models.ContactInput) (*models.Contact, error) {
	body, err := jsonBody(in)
	if err != nil {
		return nil, err
	}
	var out models.Contact
	if err := c.do(ctx, request{method: http.MethodPost, path: "/api/contacts", body: body}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CurrentCV returns the CV slot with an absolute URL, or an error matching
// models.ErrNotFound when nothing was uploaded.
func (c *Client) CurrentCV(ctx context.Context) (*models.CVDocument, error) {
	var doc models.CVDocument
	if err := c.do(ctx, request{method: http.MethodGet, path: "/api/cv"}, &doc); err != nil {
		return nil, err
	}
	doc.URL = c.absolute(doc.URL)
	return &doc, nil
}

// UploadCV replaces the CV with data. Requires a session.
func (c *Client) UploadCV(ctx context.Context, filename string, data []byte) (*models.CVDocument, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	var doc models.CVDocument
	err = c.do(ctx, request{
		method:      http.MethodPost,
		path:        "/api/admin/cv",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		auth:        true,
	}, &doc)
	if err != nil {
		return nil, err
	}
	doc.URL = c.absolute(doc.URL)
	return &doc, nil
}

func (c *Client) sendJSON(ctx context.Context, method, path string, in, out any) error {
	body, err := jsonBody(in)
	if err != nil {
		return err
	}
	return c.do(ctx, request{method: method, path: path, body: body, auth: true}, out)
}

// absolute resolves server-relative URLs (local storage driver) against the API root.
func (c *Client) absolute(u string) string {
	if strings.HasPrefix(u, "/") {
		return c.baseURL + u
	}
	return u
}
