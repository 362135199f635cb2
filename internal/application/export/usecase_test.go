package export_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/termpro2000/fdapp/internal/application/dto"
	"github.com/termpro2000/fdapp/internal/application/export"
	"github.com/termpro2000/fdapp/internal/domain"
	"github.com/termpro2000/fdapp/internal/domain/entity"
	"github.com/termpro2000/fdapp/internal/domain/repository"
)

// fakeStats records the filter it was called with and returns canned rows.
type fakeStats struct {
	lastFilter repository.OrderFilter
	rows       []*entity.OrderExportRow
}

func (f *fakeStats) OrdersForExport(fl repository.OrderFilter) ([]*entity.OrderExportRow, error) {
	f.lastFilter = fl
	return f.rows, nil
}

func (f *fakeStats) StatusStats(fl repository.OrderFilter) ([]*entity.StatusStat, error) {
	f.lastFilter = fl
	return []*entity.StatusStat{{Status: entity.StatusReceived, Orders: 2, Percent: 100}}, nil
}

func (f *fakeStats) DailyStats(fl repository.OrderFilter) ([]*entity.DailyStat, error) {
	return nil, nil
}

func (f *fakeStats) CarrierStats(fl repository.OrderFilter) ([]*entity.CarrierStat, error) {
	return nil, nil
}

func (f *fakeStats) UserStats(fl repository.OrderFilter) ([]*entity.UserOrderStat, error) {
	return nil, nil
}

// textRenderer is a trivial renderer that joins table names, enough to assert
// what was rendered without a spreadsheet dependency.
type textRenderer struct{}

func (textRenderer) Render(ts export.TableSet) ([]byte, error) {
	var names []string
	for _, t := range ts.Tables {
		names = append(names, t.Name)
	}
	return []byte(strings.Join(names, ",")), nil
}

func (textRenderer) ContentType() string { return "text/plain" }
func (textRenderer) Extension() string   { return "txt" }

type noopRecorder struct {
	actions []string
}

func (n *noopRecorder) Record(actorID, action, targetType, targetID string, details map[string]any, meta dto.RequestMeta) {
	n.actions = append(n.actions, action)
}

var (
	userActor    = domain.Identity{UserID: "u-1", Role: entity.RoleUser}
	managerActor = domain.Identity{UserID: "m-1", Role: entity.RoleManager}
)

func newExportUC(stats *fakeStats, rec *noopRecorder) *export.ExportUseCase {
	return export.NewExportUseCase(stats, map[string]export.Renderer{
		"txt": textRenderer{},
	}, rec)
}

func TestExportOrders_UserScopedToOwnOrders(t *testing.T) {
	stats := &fakeStats{}
	rec := &noopRecorder{}
	uc := newExportUC(stats, rec)

	file, err := uc.ExportOrders(userActor, dto.ExportRequest{
		Format: "txt",
		UserID: "someone-else", // ignored for user role
	}, dto.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, userActor.UserID, stats.lastFilter.UserID)
	assert.True(t, strings.HasPrefix(file.Filename, "shipping_orders_"))
	assert.True(t, strings.HasSuffix(file.Filename, ".txt"))
	assert.Equal(t, []string{"export_orders"}, rec.actions)
}

func TestExportOrders_ManagerMayFilterByUser(t *testing.T) {
	stats := &fakeStats{}
	uc := newExportUC(stats, &noopRecorder{})

	_, err := uc.ExportOrders(managerActor, dto.ExportRequest{Format: "txt", UserID: "u-9"}, dto.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "u-9", stats.lastFilter.UserID)
}

func TestExportOrders_StatusAllMeansNoFilter(t *testing.T) {
	stats := &fakeStats{}
	uc := newExportUC(stats, &noopRecorder{})

	_, err := uc.ExportOrders(managerActor, dto.ExportRequest{Format: "txt", Status: "all"}, dto.RequestMeta{})
	require.NoError(t, err)
	assert.Empty(t, stats.lastFilter.Status)
}

func TestExportOrders_UnknownFormat(t *testing.T) {
	uc := newExportUC(&fakeStats{}, &noopRecorder{})
	_, err := uc.ExportOrders(managerActor, dto.ExportRequest{Format: "pdf"}, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportOrders_BadDate(t *testing.T) {
	uc := newExportUC(&fakeStats{}, &noopRecorder{})
	_, err := uc.ExportOrders(managerActor, dto.ExportRequest{Format: "txt", StartDate: "09/01/2026"}, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportStatistics_RequiresManager(t *testing.T) {
	uc := newExportUC(&fakeStats{}, &noopRecorder{})
	_, err := uc.ExportStatistics(userActor, dto.ExportRequest{Format: "txt"}, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestExportStatistics_RendersFourTables(t *testing.T) {
	stats := &fakeStats{}
	rec := &noopRecorder{}
	uc := newExportUC(stats, rec)

	file, err := uc.ExportStatistics(managerActor, dto.ExportRequest{Format: "txt"}, dto.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, "상태별통계,일별통계,택배회사별통계,사용자별통계", string(file.Data))
	assert.True(t, strings.HasPrefix(file.Filename, "statistics_report_"))
	assert.Equal(t, []string{"export_statistics"}, rec.actions)
}
