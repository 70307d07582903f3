package observability

import (
	"context"
	"errors"
	"testing"

	"inkwell/internal/models"
	"inkwell/internal/testutil"

	promtestutil "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestDatabaseMetrics_ObservesStatements(t *testing.T) {
	db := testutil.NewSQLiteDB(t, &models.Tag{})
	require.NoError(t, db.Use(NewDatabaseMetrics()))

	errorsBefore := promtestutil.ToFloat64(DatabaseErrors.WithLabelValues("create", "tags"))

	require.NoError(t, db.Create(&models.Tag{Name: "Go", Slug: "go"}).Error)
	assert.Error(t, db.Create(&models.Tag{Name: "Go again", Slug: "go"}).Error)

	var tag models.Tag
	require.NoError(t, db.First(&tag, "slug = ?", "go").Error)
	assert.Error(t, db.First(&tag, "slug = ?", "missing").Error)

	assert.Equal(t, errorsBefore+1, promtestutil.ToFloat64(DatabaseErrors.WithLabelValues("create", "tags")))
	assert.Zero(t, promtestutil.ToFloat64(DatabaseErrors.WithLabelValues("query", "tags")))
	assert.Positive(t, promtestutil.CollectAndCount(DatabaseQueryLatency, "inkwell_database_query_latency_seconds"))
}

func TestTraceLayer_RecordsRepositorySpans(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	layer := NewTraceLayer(tp.Tracer("test"), "sqlite")

	_, read := layer.TraceRepositoryMethod(context.Background(), "GetByID", "posts")
	EndSpan(read, nil)
	_, failed := layer.TraceRepositoryMethod(context.Background(), "Create", "likes")
	EndSpan(failed, errors.New("boom"))

	spans := recorder.Ended()
	require.Len(t, spans, 2)

	assert.Equal(t, "repository.posts.GetByID", spans[0].Name())
	assert.Equal(t, codes.Unset, spans[0].Status().Code)
	assert.Contains(t, spans[0].Attributes(), attribute.String("db.system", "sqlite"))
	assert.Contains(t, spans[0].Attributes(), attribute.String("db.table", "posts"))

	assert.Equal(t, "repository.likes.Create", spans[1].Name())
	assert.Equal(t, codes.Error, spans[1].Status().Code)
	assert.Equal(t, "boom", spans[1].Status().Description)
}

func TestInitTracing_DisabledIsNoop(t *testing.T) {
	shutdown, err := InitTracing(TracingConfig{ServiceName: ServiceName})
	require.NoError(t, err)
	require.NotNil(t, shutdown)
	assert.NoError(t, shutdown(context.Background()))
	assert.NotNil(t, Tracer)
}
