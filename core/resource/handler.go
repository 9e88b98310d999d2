package resource

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/capacitanet/portal/api/web"
	"github.com/capacitanet/portal/api/weberr"
	"github.com/capacitanet/portal/storage"
	"github.com/capacitanet/portal/validate"
	"github.com/jmoiron/sqlx"
)

// maxUploadBytes bounds a single resource upload.
const maxUploadBytes = 256 << 20

// HandleCreate appends a resource to a course from a multipart form with
// "file", "order" and "type" fields. Editing is not gated by the course
// lifecycle: uploads are legal on pending and active courses alike.
func HandleCreate(db *sqlx.DB, up storage.Uploader) web.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		courseID := web.Param(r, "id")

		ok, err := courseExists(ctx, db, courseID)
		if err != nil {
			return fmt.Errorf("checking course[%s]: %w", courseID, err)
		}
		if !ok {
			return weberr.NotFound(fmt.Errorf("course[%s] does not exist", courseID))
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			return weberr.BadRequest(fmt.Errorf("unable to parse multipart form: %w", err))
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("missing file field: %w", err))
		}
		defer file.Close()

		order, err := strconv.Atoi(r.FormValue("order"))
		if err != nil {
			return weberr.BadRequest(fmt.Errorf("malformed order field: %w", err))
		}

		// The explicit form value overrides the extension-derived default.
		typ := Type(r.FormValue("type"))
		if typ == "" {
			typ, _ = TypeFromFilename(header.Filename)
		}
		if !typ.Valid() {
			return weberr.Unprocessable(fmt.Errorf("unknown resource type %q", typ), "unknown resource type")
		}

		rn := ResourceNew{
			Name:  header.Filename,
			Type:  typ,
			Order: order,
		}
		if err := validate.Check(rn); err != nil {
			return weberr.Unprocessable(err, err.Error())
		}

		locator, err := up.Upload(ctx, courseID, header.Filename, file)
		if err != nil {
			return fmt.Errorf("storing resource bytes: %w", err)
		}

		res := Resource{
			ID:        validate.GenerateID(),
			CourseID:  courseID,
			Name:      rn.Name,
			Type:      rn.Type,
			Order:     rn.Order,
			Locator:   locator,
			CreatedAt: time.Now().UTC(),
		}

		if err := Create(ctx, db, res); err != nil {
			return fmt.Errorf("creating resource in course[%s]: %w", courseID, err)
		}

		return web.Respond(ctx, w, res, http.StatusCreated)
	}
}