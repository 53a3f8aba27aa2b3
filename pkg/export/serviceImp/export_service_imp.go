package serviceImp

import (
	"context"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	"evergraze/entities"
	"evergraze/pkg/apperr"
	"evergraze/pkg/export/service"
	"evergraze/pkg/export/sink"
	"evergraze/pkg/metrics"
	repo "evergraze/pkg/record/repository"
)

type Options struct {
	FarmName string
	LogoPath string
	// FontPath is an optional TrueType font for scripts the bundled font lacks.
	FontPath string
	Now      func() time.Time
}

type exportSvc struct {
	r    repo.RecordRepository
	out  sink.Sink
	farm string
	logo string
	font string
	now  func() time.Time
}

func New(r repo.RecordRepository, out sink.Sink, opts Options) service.ExportService {
	if opts.FarmName == "" {
		opts.FarmName = "EverGraze Farms"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &exportSvc{r: r, out: out, farm: opts.FarmName, logo: opts.LogoPath, font: opts.FontPath, now: opts.Now}
}

// history is everything stored about one animal, in store order.
type history struct {
	AnimalID     string
	Profiles     []entities.Record
	Weights      []entities.Record
	Vaccinations []entities.Record
}

func (h history) empty() bool {
	return len(h.Profiles) == 0 && len(h.Weights) == 0 && len(h.Vaccinations) == 0
}

func (h history) rows(k entities.Kind) []entities.Record {
	switch k {
	case entities.KindLivestock:
		return h.Profiles
	case entities.KindWeight:
		return h.Weights
	default:
		return h.Vaccinations
	}
}

func (s *exportSvc) gather(ctx context.Context, animalID string) (history, error) {
	h := history{AnimalID: animalID}
	var err error
	if h.Profiles, err = s.r.ByAnimal(ctx, entities.KindLivestock, animalID); err != nil {
		return h, err
	}
	if h.Weights, err = s.r.ByAnimal(ctx, entities.KindWeight, animalID); err != nil {
		return h, err
	}
	if h.Vaccinations, err = s.r.ByAnimal(ctx, entities.KindVaccination, animalID); err != nil {
		return h, err
	}
	return h, nil
}

func (s *exportSvc) Workbook(ctx context.Context, animalID string) (*service.Artifact, error) {
	animalID, err := cleanAnimalID(animalID)
	if err != nil {
		return nil, err
	}
	h, err := s.gather(ctx, animalID)
	if err != nil {
		return nil, s.fail("xlsx", err)
	}
	if h.empty() {
		return nil, s.fail("xlsx", apperr.Export("no records for animal %q", animalID))
	}
	data, err := renderWorkbook(h)
	if err != nil {
		return nil, s.fail("xlsx", err)
	}
	return s.publish(ctx, "xlsx", "evergraze_export_"+fileSlug(animalID)+".xlsx", service.ContentTypeXLSX, data)
}

func (s *exportSvc) Document(ctx context.Context, animalID string) (*service.Artifact, error) {
	animalID, err := cleanAnimalID(animalID)
	if err != nil {
		return nil, err
	}
	h, err := s.gather(ctx, animalID)
	if err != nil {
		return nil, s.fail("pdf", err)
	}
	if len(h.Profiles) == 0 {
		return nil, s.fail("pdf", apperr.Export("no livestock profile for animal %q: %w", animalID, apperr.ErrNotFound))
	}
	rep := buildReport(s.farm, h, s.now())
	data, err := renderPDF(rep, s.logo, s.font)
	if err != nil {
		return nil, s.fail("pdf", err)
	}
	return s.publish(ctx, "pdf", "evergraze_report_"+fileSlug(animalID)+".pdf", service.ContentTypePDF, data)
}

func (s *exportSvc) publish(ctx context.Context, format, name, contentType string, data []byte) (*service.Artifact, error) {
	loc, err := s.out.Put(ctx, name, contentType, data)
	if err != nil {
		return nil, s.fail(format, err)
	}
	metrics.Exports.WithLabelValues(format, "ok").Inc()
	metrics.ExportBytes.WithLabelValues(format).Observe(float64(len(data)))
	log.Printf("[export] %s %d bytes -> %s", name, len(data), loc)
	return &service.Artifact{Name: name, ContentType: contentType, Location: loc, Data: data}, nil
}

func (s *exportSvc) fail(format string, err error) error {
	result := "error"
	if apperr.Status(err) != http.StatusInternalServerError {
		result = "empty"
	}
	metrics.Exports.WithLabelValues(format, result).Inc()
	return err
}

func cleanAnimalID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", apperr.Validation("animal_id is required")
	}
	return id, nil
}

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// fileSlug keeps export names inside the output location whatever the animal id holds.
func fileSlug(animalID string) string {
	s := unsafeName.ReplaceAllString(animalID, "_")
	if strings.Trim(s, "_") == "" {
		return "animal"
	}
	return s
}
