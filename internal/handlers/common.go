package handlers

import (
	"io"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/gestobra/gestobra-api/internal/services"
	"github.com/gestobra/gestobra-api/internal/types"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// parsePagination reads page/limit query parameters with sane bounds.
func parsePagination(c *fiber.Ctx) (page, limit int) {
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit = c.QueryInt("limit", defaultPageLimit)
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	return page, limit
}

// parseReportFilter reads the shared report query parameters. The literal
// venture id "todos" means all ventures and drops the venture predicate.
func parseReportFilter(c *fiber.Ctx) (services.ReportFilter, error) {
	filter := services.ReportFilter{
		Status:   c.Query("status"),
		Category: c.Query("category"),
		Search:   c.Query("q"),
	}

	if ventureID := c.Query("empreendimento"); ventureID != "" && ventureID != "todos" {
		filter.VentureID = ventureID
	}

	from, err := parseDate(c.Query("from"))
	if err != nil {
		return filter, types.BadRequest("invalid 'from' date, expected YYYY-MM-DD")
	}
	to, err := parseDate(c.Query("to"))
	if err != nil {
		return filter, types.BadRequest("invalid 'to' date, expected YYYY-MM-DD")
	}
	if from != nil && to != nil && to.Before(*from) {
		return filter, types.BadRequest("'to' date is before 'from' date")
	}
	filter.From = from
	filter.To = endOfDay(to)
	return filter, nil
}

// endOfDay pushes an inclusive date bound to the last instant of that day, so
// expenses time-stamped later on the 'to' day still match.
func endOfDay(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	end := t.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return &end
}

// readUploadedFile extracts the "file" part of a multipart upload. The
// declared content type is carried as-is; the services validate it against
// the allow-list.
func readUploadedFile(c *fiber.Ctx) (services.FileInput, error) {
	header, err := c.FormFile("file")
	if err != nil {
		return services.FileInput{}, types.BadRequest("multipart field 'file' is required")
	}

	f, err := header.Open()
	if err != nil {
		return services.FileInput{}, types.BadRequest("could not read uploaded file")
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return services.FileInput{}, types.Internal("failed to read uploaded file")
	}

	return services.FileInput{
		Data:     data,
		Filename: header.Filename,
		MimeType: header.Header.Get("Content-Type"),
	}, nil
}

// parseDate parses an optional YYYY-MM-DD query value.
func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
