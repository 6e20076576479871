package service

import (
	"context"
	"strings"

	"phonefield/internal/countries"
	"phonefield/internal/phonefield/domain"
	"phonefield/internal/phonefield/transport"
	"phonefield/platform/apperr"
	"phonefield/platform/config"
	"phonefield/platform/events"
	"phonefield/platform/logger"
	"phonefield/platform/phone"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Service derives phone field values from client supplied snapshots. It keeps
// no per-field state between calls.
type Service struct {
	cfg    config.PhoneFieldConfig
	bus    events.Bus
	log    *logger.Logger
	tracer trace.Tracer
}

// Option configures a Service.
type Option func(*Service)

// WithTracerProvider traces operations with tp instead of the global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Service) {
		s.tracer = tp.Tracer(tracerName)
	}
}

const tracerName = "phonefield"

// New creates a phone field service. Country changes are logged through a
// subscription on bus.
func New(cfg config.PhoneFieldConfig, bus events.Bus, log *logger.Logger, opts ...Option) *Service {
	s := &Service{cfg: cfg, bus: bus, log: log, tracer: otel.Tracer(tracerName)}
	for _, opt := range opts {
		opt(s)
	}
	bus.Subscribe(domain.CountryChanged{}.EventName(), events.HandlerFunc(s.onCountryChanged))
	return s
}

func (s *Service) onCountryChanged(ctx context.Context, event events.Event) error {
	if e, ok := event.(domain.CountryChanged); ok {
		s.log.WithContext(ctx).CountrySelected(e.Previous, e.Selected)
	}
	return nil
}

// ListCountries returns the catalog filtered by a comma separated allow-list.
func (s *Service) ListCountries(allowed string) transport.CountryListResponse {
	items := countries.Filter(SplitAllowList(allowed))
	out := make([]transport.CountryResponse, 0, len(items))
	for _, c := range items {
		out = append(out, transport.ToCountryResponse(c))
	}
	return transport.CountryListResponse{Items: out, Total: len(out)}
}

// GetCountry looks up a country by region id. The code is normalized first.
func (s *Service) GetCountry(code string) (transport.CountryResponse, error) {
	c, err := countries.Lookup(countries.NormalizeCode(code))
	if err != nil {
		return transport.CountryResponse{}, err
	}
	return transport.ToCountryResponse(c), nil
}

// CountryForLocale resolves a host locale, falling back to the catalog default.
func (s *Service) CountryForLocale(tag string) transport.CountryResponse {
	return transport.ToCountryResponse(countries.ForLocale(tag))
}

// DetectCountry resolves the country of a pasted international number. Numbers
// without a "+" prefix, with an unassigned dialing code or with a
// non-geographic code such as +800 fail validation.
func (s *Service) DetectCountry(number string) (transport.DetectResponse, error) {
	region := phone.RegionForNumber(number)
	c, err := countries.Lookup(region)
	if region == "" || err != nil {
		return transport.DetectResponse{}, apperr.Validation("cannot determine country from number").
			WithOp("phonefield.DetectCountry")
	}
	return transport.DetectResponse{
		Country: transport.ToCountryResponse(c),
		E164:    phone.NormalizeE164(number, region),
	}, nil
}

// Create builds a new phone field, taking configured defaults for every
// option the request leaves empty.
func (s *Service) Create(ctx context.Context, req transport.CreateRequest) (resp transport.PhoneFieldResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "phonefield.Create")
	defer func() { endSpan(span, resp, err) }()

	opts := domain.Options{
		DefaultCountryCode: req.DefaultCountryCode,
		AllowedCountries:   req.AllowedCountries,
		ShowCode:           s.cfg.GetShowCode(),
		ShowFlag:           s.cfg.GetShowFlag(),
	}
	if opts.DefaultCountryCode == "" {
		opts.DefaultCountryCode = s.cfg.GetDefaultCountry()
	}
	if len(opts.AllowedCountries) == 0 {
		opts.AllowedCountries = s.cfg.GetAllowedCountries()
	}
	if req.ShowCode != nil {
		opts.ShowCode = *req.ShowCode
	}
	if req.ShowFlag != nil {
		opts.ShowFlag = *req.ShowFlag
	}

	locale := req.Locale
	if locale == "" {
		locale = s.cfg.GetLocale()
	}
	opts.Locale = domain.LocaleFunc(func() string { return locale })

	st, err := domain.New(opts)
	if err != nil {
		return transport.PhoneFieldResponse{}, err
	}

	field := domain.NewField(st, s.bus)
	if err = field.SetRawDigits(ctx, req.RawDigits); err != nil {
		return transport.PhoneFieldResponse{}, apperr.Wrap(apperr.KindInternal, "publish digits change", err)
	}
	return transport.ToPhoneFieldResponse(st), nil
}

// Derive restores a snapshot and returns every derived value.
func (s *Service) Derive(ctx context.Context, req transport.DeriveRequest) (resp transport.PhoneFieldResponse, err error) {
	_, span := s.tracer.Start(ctx, "phonefield.Derive")
	defer func() { endSpan(span, resp, err) }()

	st, err := domain.Restore(req.Snapshot.ToSnapshot())
	if err != nil {
		return transport.PhoneFieldResponse{}, err
	}

	resp = transport.ToPhoneFieldResponse(st)
	if req.Candidate != nil {
		valid := st.IsValidNumber(*req.Candidate)
		resp.CandidateValid = &valid
	}
	return resp, nil
}

// SelectCountry restores a snapshot and selects a new country. The code is
// normalized; a code outside the snapshot's active subset is a not found
// error.
func (s *Service) SelectCountry(ctx context.Context, req transport.SelectCountryRequest) (resp transport.PhoneFieldResponse, err error) {
	ctx, span := s.tracer.Start(ctx, "phonefield.SelectCountry")
	defer func() { endSpan(span, resp, err) }()

	st, err := domain.Restore(req.Snapshot.ToSnapshot())
	if err != nil {
		return transport.PhoneFieldResponse{}, err
	}

	field := domain.NewField(st, s.bus)
	if err = field.SetCountry(ctx, countries.NormalizeCode(req.Code)); err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.log.WithContext(ctx).CountryRejected(req.Code, st.AllowedCountries())
		}
		return transport.PhoneFieldResponse{}, err
	}
	return transport.ToPhoneFieldResponse(st), nil
}

// Mask applies the display mask of a country to raw text and maps the
// optional cursor offset.
func (s *Service) Mask(req transport.MaskRequest) (transport.MaskResponse, error) {
	c, err := countries.Lookup(countries.NormalizeCode(req.Country))
	if err != nil {
		return transport.MaskResponse{}, err
	}

	mask := domain.MaskFor(c.Code, c.DialDigits())
	tr := mask.Apply(req.Text)
	resp := transport.MaskResponse{Text: tr.Text, Pattern: mask.Pattern()}
	if req.Offset != nil {
		mapped := tr.OriginalToTransformed(*req.Offset)
		resp.Offset = &mapped
	}
	return resp, nil
}

// endSpan records the outcome of a phone field operation on span and ends it.
func endSpan(span trace.Span, resp transport.PhoneFieldResponse, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, apperr.GetKind(err).String())
	} else {
		span.SetAttributes(
			attribute.String("phonefield.country", resp.Snapshot.SelectedCountryCode),
			attribute.Bool("phonefield.valid", resp.IsValid),
		)
	}
	span.End()
}

// SplitAllowList splits a comma separated allow-list, trimming items and
// dropping empty ones. Case is kept so name matching stays exact. In query
// strings the "+" of a dialing code must be sent as %2B.
func SplitAllowList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
