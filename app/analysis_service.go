package app

import (
	"bytes"
	"context"
	"io"
	"time"

	"buret/adapters/datareadiness/coercer"
	"buret/domain/core"
	"buret/domain/survey"
	"buret/internal"
	"buret/internal/analysis"
	"buret/internal/errors"
	"buret/internal/report"
	"buret/ports"
)

// Frequency table display labels
const (
	LabelSexo         = "sexo (0=mujer,1=hombre)"
	LabelNivelBurnout = "nivel_burnout"
	LabelNivelCopsoq  = "nivel_copsoq"
)

// AnalysisService runs the load → coerce → classify → report pipeline for one file
type AnalysisService struct {
	reader  ports.TableReader
	coercer *coercer.IntCoercer
	test    ports.StatTest // nil when the t-test capability is disabled
	logger  *internal.Logger
}

// NewAnalysisService creates an analysis service. test may be nil.
func NewAnalysisService(reader ports.TableReader, c *coercer.IntCoercer, test ports.StatTest, logger *internal.Logger) *AnalysisService {
	if logger == nil {
		logger = internal.Discard
	}
	return &AnalysisService{reader: reader, coercer: c, test: test, logger: logger}
}

// AnalysisResult carries the classified dataset alongside the report built from it
type AnalysisResult struct {
	RunID    core.RunID
	Dataset  *survey.Dataset
	Coercion coercer.CoercionReport
	Report   *report.Report
	Runtime  time.Duration
}

// Analyze loads path and computes every report section
func (s *AnalysisService) Analyze(ctx context.Context, path string) (*AnalysisResult, error) {
	start := time.Now()
	runID := core.NewRunID()
	log := s.logger.With(runID.String())
	log.Info("analysis started for %s", path)

	table, err := s.reader.Read(ctx, path)
	if err != nil {
		return nil, err
	}

	ds, coercion, err := s.coercer.CoerceTable(table)
	if err != nil {
		return nil, err
	}
	if coercion.HasWarnings() {
		log.Warn("%d cells could not be read as integers and were treated as missing: %v", coercion.Total, coercion.ByColumn)
		for _, w := range coercion.Samples {
			log.Trace("unparseable cell %s", w)
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ds.Classify()
	log.Debug("classified %d records", ds.Len())

	rep, err := s.buildReport(ds, log)
	if err != nil {
		return nil, err
	}

	result := &AnalysisResult{
		RunID:    runID,
		Dataset:  ds,
		Coercion: coercion,
		Report:   rep,
		Runtime:  time.Since(start),
	}
	log.Info("analysis finished in %s", result.Runtime)
	return result, nil
}

func (s *AnalysisService) buildReport(ds *survey.Dataset, log *internal.Logger) (*report.Report, error) {
	descriptive, err := analysis.Describe(ds, survey.NumericColumns)
	if err != nil {
		return nil, errors.Wrap(err, "descriptive statistics")
	}

	sexo, err := ds.Column(survey.ColSexo)
	if err != nil {
		return nil, errors.Wrap(err, "sexo frequencies")
	}
	nivelBurnout, err := ds.Levels(survey.ColNivelBurnout)
	if err != nil {
		return nil, errors.Wrap(err, "nivel_burnout frequencies")
	}
	nivelCopsoq, err := ds.Levels(survey.ColNivelCopsoq)
	if err != nil {
		return nil, errors.Wrap(err, "nivel_copsoq frequencies")
	}

	correlations, err := analysis.Correlations(ds, survey.NumericColumns)
	if err != nil {
		return nil, errors.Wrap(err, "correlations")
	}

	comparison, err := analysis.CompareHighLow(ds, survey.ColBurnout, survey.ColUsoRedes, s.test)
	if err != nil {
		return nil, errors.Wrap(err, "high/low comparison")
	}
	if !comparison.TTestAvailable {
		log.Info("%v: t/p line omitted", core.ErrStatisticsUnavailable)
	} else if comparison.TTestErr != nil {
		log.Warn("%s skipped: %v", comparison.TTestName, comparison.TTestErr)
	}
	if comparison.CohensDErr != nil {
		log.Warn("cohen's d undefined: %v", comparison.CohensDErr)
	}

	return &report.Report{
		Descriptive: descriptive,
		Frequencies: []analysis.FrequencyTable{
			analysis.Frequencies(LabelSexo, sexo),
			analysis.Frequencies(LabelNivelBurnout, nivelBurnout),
			analysis.Frequencies(LabelNivelCopsoq, nivelCopsoq),
		},
		Correlations: correlations,
		Comparison:   comparison,
	}, nil
}

// Run analyzes path and writes the rendered report to w. Nothing is written
// unless every stage succeeds.
func (s *AnalysisService) Run(ctx context.Context, path string, renderer report.Renderer, w io.Writer) error {
	result, err := s.Analyze(ctx, path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, result.Report); err != nil {
		return errors.Wrap(err, "rendering report")
	}
	if _, err := buf.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing report")
	}
	return nil
}
