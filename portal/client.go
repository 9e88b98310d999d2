package portal

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/capacitanet/portal/core/auth"
	"github.com/capacitanet/portal/core/course"
	"github.com/capacitanet/portal/core/resource"
	"github.com/capacitanet/portal/core/user"
	"github.com/sirupsen/logrus"
)

// Client is the typed boundary to the remote API. Responses are decoded into
// the explicit schemas of the core packages; a shape mismatch is reported as
// a TransportError, never propagated as missing fields.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     logrus.FieldLogger
}

func NewClient(baseURL string, log logrus.FieldLogger) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		Log:     log,
	}
}

// Matches the registration form check of the reference behavior: something,
// an @, something, a dot, something.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const minPasswordLen = 6

type RegisterInput struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
}

func (c *Client) Register(ctx context.Context, in RegisterInput) error {
	if in.Email == "" || in.FirstName == "" || in.LastName == "" || in.Password == "" {
		return validationf("all fields are required")
	}
	if !emailRe.MatchString(in.Email) {
		return validationf("%q is not a valid email address", in.Email)
	}
	if len(in.Password) < minPasswordLen {
		return validationf("password must be at least %d characters", minPasswordLen)
	}

	return c.do(ctx, nil, http.MethodPost, "/auth/register", in, nil)
}

// Login authenticates and returns the session to pass to every other call.
func (c *Client) Login(ctx context.Context, email, password string) (*Session, error) {
	if email == "" || password == "" {
		return nil, validationf("email and password are required")
	}

	in := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{email, password}

	var tok auth.Token
	if err := c.do(ctx, nil, http.MethodPost, "/auth/login", in, &tok); err != nil {
		return nil, err
	}

	return &Session{Token: tok.Token, Expiry: tok.Expiry}, nil
}

// Logout invalidates the session remotely and clears it locally. The local
// clear happens even when the remote call fails: a dead token is not worth
// keeping around.
func (c *Client) Logout(ctx context.Context, s *Session) error {
	err := c.do(ctx, s, http.MethodPost, "/auth/logout", nil, nil)
	s.clear()
	return err
}

// ActiveCourses fetches the learner-facing catalog.
func (c *Client) ActiveCourses(ctx context.Context, s *Session) ([]course.Course, error) {
	var cs []course.Course
	if err := c.do(ctx, s, http.MethodGet, "/courses", nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

// PendingCourses fetches the instructor's activation queue.
func (c *Client) PendingCourses(ctx context.Context, s *Session) ([]course.Course, error) {
	var cs []course.Course
	if err := c.do(ctx, s, http.MethodGet, "/courses/pending", nil, &cs); err != nil {
		return nil, err
	}
	return cs, nil
}

func (c *Client) CreateCourse(ctx context.Context, s *Session, cn course.CourseNew) (course.Course, error) {
	if cn.ID == "" || cn.Title == "" || cn.Description == "" {
		return course.Course{}, validationf("id, title and description are required")
	}
	if len(cn.Tags) == 0 {
		return course.Course{}, validationf("select at least one tag")
	}

	var created course.Course
	if err := c.do(ctx, s, http.MethodPost, "/courses", cn, &created); err != nil {
		return course.Course{}, err
	}
	return created, nil
}

func (c *Client) ActivateCourse(ctx context.Context, s *Session, id string) error {
	if id == "" {
		return validationf("course id is required")
	}

	in := struct {
		ID string `json:"id"`
	}{id}

	return c.do(ctx, s, http.MethodPost, "/courses/activate", in, nil)
}

func (c *Client) Subscribe(ctx context.Context, s *Session, courseID string) error {
	if courseID == "" {
		return validationf("course id is required")
	}

	in := struct {
		ID string `json:"id"`
	}{courseID}

	return c.do(ctx, s, http.MethodPost, "/courses/subscribe", in, nil)
}

// ResourceUpload is the authoring payload of a single resource. Type is the
// explicit, user-confirmable value; when empty it defaults from the file
// extension.
type ResourceUpload struct {
	FileName string
	File     io.Reader
	Order    int
	Type     resource.Type
}

func (c *Client) AddResource(ctx context.Context, s *Session, courseID string, up ResourceUpload) (resource.Resource, error) {
	if courseID == "" {
		return resource.Resource{}, validationf("course id is required")
	}
	if up.FileName == "" || up.File == nil {
		return resource.Resource{}, validationf("a file is required")
	}
	if up.Order <= 0 {
		return resource.Resource{}, validationf("order must be a positive number")
	}

	typ := up.Type
	if typ == "" {
		typ, _ = resource.TypeFromFilename(up.FileName)
	}
	if !typ.Valid() {
		return resource.Resource{}, validationf("unknown resource type %q", string(typ))
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", up.FileName)
	if err != nil {
		return resource.Resource{}, &TransportError{Err: err}
	}
	if _, err := io.Copy(part, up.File); err != nil {
		return resource.Resource{}, &TransportError{Err: err}
	}
	if err := mw.WriteField("order", strconv.Itoa(up.Order)); err != nil {
		return resource.Resource{}, &TransportError{Err: err}
	}
	if err := mw.WriteField("type", string(typ)); err != nil {
		return resource.Resource{}, &TransportError{Err: err}
	}
	if err := mw.Close(); err != nil {
		return resource.Resource{}, &TransportError{Err: err}
	}

	var created resource.Resource
	err = c.doRaw(ctx, s, http.MethodPost, "/courses/"+courseID+"/resources", &body, mw.FormDataContentType(), &created)
	if err != nil {
		return resource.Resource{}, err
	}
	return created, nil
}

func (c *Client) Profile(ctx context.Context, s *Session) (user.Profile, error) {
	var p user.Profile
	if err := c.do(ctx, s, http.MethodGet, "/profile", nil, &p); err != nil {
		return user.Profile{}, err
	}
	return p, nil
}

func (c *Client) do(ctx context.Context, s *Session, method, path string, in interface{}, out interface{}) error {
	var body io.Reader
	contentType := ""

	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return &TransportError{Err: fmt.Errorf("encoding request: %w", err)}
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}

	return c.doRaw(ctx, s, method, path, body, contentType, out)
}

func (c *Client) doRaw(ctx context.Context, s *Session, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return &TransportError{Err: err}
	}

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if s.Active() {
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	if c.Log != nil {
		c.Log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("api call")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return &TransportError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusMultipleChoices {
		return decodeFailure(resp)
	}

	if out == nil {
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &TransportError{Err: fmt.Errorf("decoding response: %w", err)}
	}

	return nil
}

// decodeFailure turns a non-success response into a ConflictError with the
// server's message when one is present, and a TransportError when the body
// is not the expected JSON shape.
func decodeFailure(resp *http.Response) error {
	var er struct {
		Error string `json:"error"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&er); err != nil || er.Error == "" {
		return &TransportError{Err: fmt.Errorf("unexpected response with status %d", resp.StatusCode)}
	}

	return &ConflictError{Msg: er.Error, Status: resp.StatusCode}
}
