package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ecodrive/apperror"
	"ecodrive/events"
	"ecodrive/models"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.StationStatusChanged
}

func (p *recordingPublisher) PublishStationStatus(_ context.Context, evt events.StationStatusChanged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestStationStatusStampsTimeAndPublishes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.neighborhood(t, "Centro")
	st := f.station(t, b.BairroID, "Estação A", 0, 0)

	clock := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	f.statuses.now = func() time.Time { return clock }

	created, err := f.statuses.Create(ctx, models.StationStatusInput{EstacaoID: ptr(st.EstacaoID), Status: ptr(models.StatusAtiva)})
	require.NoError(t, err)
	assert.True(t, clock.Equal(created.UltimaAtualizacao))

	clock = clock.Add(time.Hour)
	updated, err := f.statuses.Update(ctx, created.StatusID, models.StationStatusInput{Status: ptr(models.StatusEmManutencao)})
	require.NoError(t, err)
	assert.True(t, clock.Equal(updated.UltimaAtualizacao))
	assert.Equal(t, st.EstacaoID, updated.EstacaoID)

	require.Len(t, f.published.events, 2)
	assert.Equal(t, models.StatusEmManutencao, f.published.events[1].Status)
	assert.Equal(t, st.EstacaoID, f.published.events[1].EstacaoID)

	_, err = f.statuses.Create(ctx, models.StationStatusInput{EstacaoID: ptr(st.EstacaoID), Status: ptr("Quebrada")})
	assertKind(t, apperror.KindInvalidRequest, err)
	assert.Len(t, f.published.events, 2)

	found, err := f.statuses.FindByStation(ctx, st.EstacaoID)
	require.NoError(t, err)
	assert.Len(t, found, 1)

	_, err = f.statuses.FindByStation(ctx, 404)
	assertKind(t, apperror.KindNotFound, err)
}

func TestExpenseOnePerHistory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.neighborhood(t, "Centro")
	st := f.station(t, b.BairroID, "Estação A", 0, 0)
	u := f.user(t, "ana@example.com")
	v := f.vehicle(t, u.UsuarioID, "Tesla", nil)
	h := f.history(t, u.UsuarioID, v.VeiculoID, st.EstacaoID)

	clock := time.Date(2025, 3, 10, 10, 0, 0, 0, time.UTC)
	f.expenses.now = func() time.Time { return clock }

	g, err := f.expenses.Create(ctx, models.ChargingExpenseInput{HistoricoID: ptr(h.HistoricoID), CustoTotal: ptr(48.75)})
	require.NoError(t, err)
	assert.True(t, clock.Equal(g.DataGasto))

	_, err = f.expenses.Create(ctx, models.ChargingExpenseInput{HistoricoID: ptr(h.HistoricoID), CustoTotal: ptr(10.0)})
	assertKind(t, apperror.KindInvalidRequest, err)

	_, err = f.expenses.Create(ctx, models.ChargingExpenseInput{HistoricoID: ptr(uint(404)), CustoTotal: ptr(10.0)})
	assertKind(t, apperror.KindNotFound, err)

	found, err := f.expenses.FindByHistory(ctx, h.HistoricoID)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, g.GastoID, found[0].GastoID)

	// deleting the session removes its expense
	require.NoError(t, f.histories.Delete(ctx, h.HistoricoID))
	_, err = f.expenses.Get(ctx, g.GastoID)
	assertKind(t, apperror.KindNotFound, err)
}

func TestExpensePeriodAndExport(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.neighborhood(t, "Centro")
	st := f.station(t, b.BairroID, "Estação A", 0, 0)
	u := f.user(t, "ana@example.com")
	v := f.vehicle(t, u.UsuarioID, "Tesla", nil)

	march := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	april := time.Date(2025, 4, 15, 10, 0, 0, 0, time.UTC)
	for _, d := range []time.Time{march, april} {
		h := f.history(t, u.UsuarioID, v.VeiculoID, st.EstacaoID)
		_, err := f.expenses.Create(ctx, models.ChargingExpenseInput{HistoricoID: ptr(h.HistoricoID), DataGasto: ptr(d), CustoTotal: ptr(20.0)})
		require.NoError(t, err)
	}

	from := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 3, 31, 23, 59, 59, 0, time.UTC)
	inMarch, err := f.expenses.FindByPeriod(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, inMarch, 1)
	assert.True(t, march.Equal(inMarch[0].DataGasto))

	_, err = f.expenses.FindByPeriod(ctx, to, from)
	assertKind(t, apperror.KindInvalidRequest, err)

	buf, err := f.expenses.Export(ctx, nil, nil)
	require.NoError(t, err)

	wb, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer wb.Close()

	rows, err := wb.GetRows(expenseSheet)
	require.NoError(t, err)
	require.Len(t, rows, 4) // header, two expenses, total
	assert.Equal(t, "Gasto ID", rows[0][0])
	assert.Equal(t, "Total", rows[3][7])
	assert.Equal(t, "40", rows[3][8])
}

func TestExpenseWorkbookLayout(t *testing.T) {
	when := time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)
	wb, err := expenseWorkbook([]expenseRow{{
		GastoID: 7, HistoricoID: 3, UsuarioID: 1, VeiculoID: 2, EstacaoID: 4,
		KwhConsumidos: 12.5, DataCarregamento: when, DataGasto: when, CustoTotal: 18.75,
	}})
	require.NoError(t, err)
	defer wb.Close()

	assert.Equal(t, []string{expenseSheet}, wb.GetSheetList())

	rows, err := wb.GetRows(expenseSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, expenseHeaders, rows[0])
	assert.Equal(t, []string{"7", "3", "1", "2", "4", "12.5", "2025-03-15 10:00:00", "2025-03-15 10:00:00", "18.75"}, rows[1])
	assert.Equal(t, "18.75", rows[2][8])

	first, err := wb.GetCellStyle(expenseSheet, "A1")
	require.NoError(t, err)
	last, err := wb.GetCellStyle(expenseSheet, "I1")
	require.NoError(t, err)
	assert.NotZero(t, first)
	assert.Equal(t, first, last)

	width, err := wb.GetColWidth(expenseSheet, "I")
	require.NoError(t, err)
	assert.Equal(t, 20.0, width)
}

func TestReservationLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.neighborhood(t, "Centro")
	st := f.station(t, b.BairroID, "Estação A", 0, 0)
	u := f.user(t, "ana@example.com")

	_, err := f.reservations.Create(ctx, models.ReservationInput{UsuarioID: ptr(u.UsuarioID), EstacaoID: ptr(st.EstacaoID), Status: ptr(0)})
	assertKind(t, apperror.KindInvalidRequest, err)

	_, err = f.reservations.Create(ctx, models.ReservationInput{
		UsuarioID: ptr(u.UsuarioID), EstacaoID: ptr(uint(404)), DataReserva: ptr(time.Now()), Status: ptr(0),
	})
	assertKind(t, apperror.KindNotFound, err)

	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	f.reservations.now = func() time.Time { return now }

	old, err := f.reservations.Create(ctx, models.ReservationInput{
		UsuarioID: ptr(u.UsuarioID), EstacaoID: ptr(st.EstacaoID),
		DataReserva: ptr(now.Add(-2 * time.Hour)), Status: ptr(models.ReservaPendente),
	})
	require.NoError(t, err)
	upcoming, err := f.reservations.Create(ctx, models.ReservationInput{
		UsuarioID: ptr(u.UsuarioID), EstacaoID: ptr(st.EstacaoID),
		DataReserva: ptr(now.Add(2 * time.Hour)), Status: ptr(models.ReservaPendente),
	})
	require.NoError(t, err)

	n, err := f.reservations.ExpireOverdue(ctx, 30*time.Minute)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	got, err := f.reservations.Get(ctx, old.ReservaID)
	require.NoError(t, err)
	assert.Equal(t, models.ReservaExpirada, got.Status)

	pending, err := f.reservations.FindByStatus(ctx, models.ReservaPendente)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, upcoming.ReservaID, pending[0].ReservaID)

	byUser, err := f.reservations.FindByUser(ctx, u.UsuarioID)
	require.NoError(t, err)
	assert.Len(t, byUser, 2)

	inWindow, err := f.reservations.FindByPeriod(ctx, now, now.Add(3*time.Hour))
	require.NoError(t, err)
	require.Len(t, inWindow, 1)
	assert.Equal(t, upcoming.ReservaID, inWindow[0].ReservaID)

	_, err = f.reservations.FindByStatus(ctx, models.ReservaCancelada)
	assertKind(t, apperror.KindNotFound, err)
}

func TestFindersReturnNotFoundWhenEmpty(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.neighborhoods.SearchByName(ctx, "nada")
	assertKind(t, apperror.KindNotFound, err)
	_, err = f.dealerships.FindByNeighborhood(ctx, 1)
	assertKind(t, apperror.KindNotFound, err)
	_, err = f.stations.SearchByChargerType(ctx, "chademo")
	assertKind(t, apperror.KindNotFound, err)
	_, err = f.vehicles.FindByUser(ctx, 1)
	assertKind(t, apperror.KindNotFound, err)
	_, err = f.histories.FindByVehicle(ctx, 1)
	assertKind(t, apperror.KindNotFound, err)
	_, err = f.users.SearchByName(ctx, "ninguem")
	assertKind(t, apperror.KindNotFound, err)
}

func TestFindersMatchIgnoringCase(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.neighborhood(t, "Vila Madalena")
	f.neighborhood(t, "Centro")
	f.station(t, b.BairroID, "Estação A", 0, 0)
	_, err := f.dealerships.Create(ctx, models.DealershipInput{
		Nome: ptr("EV Motors"), BairroID: ptr(b.BairroID), Marca: ptr("Volvo"), TemEstacaoRecarga: ptr(false),
	})
	require.NoError(t, err)

	found, err := f.neighborhoods.SearchByName(ctx, "MADALENA")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, b.BairroID, found[0].BairroID)

	stations, err := f.stations.SearchByChargerType(ctx, "ccs")
	require.NoError(t, err)
	assert.Len(t, stations, 1)

	byBairro, err := f.stations.FindByNeighborhood(ctx, b.BairroID)
	require.NoError(t, err)
	assert.Len(t, byBairro, 1)

	dealers, err := f.dealerships.SearchByBrand(ctx, "vol")
	require.NoError(t, err)
	require.Len(t, dealers, 1)
	assert.False(t, dealers[0].TemEstacaoRecarga)
}

func TestNearbyStations(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	b := f.neighborhood(t, "Centro")
	// Praça da Sé, Avenida Paulista (~2.5 km), Campinas (~85 km)
	se := f.station(t, b.BairroID, "Sé", -23.5503, -46.6339)
	paulista := f.station(t, b.BairroID, "Paulista", -23.5614, -46.6559)
	f.station(t, b.BairroID, "Campinas", -22.9099, -47.0626)

	found, err := f.stations.Nearby(ctx, -23.5505, -46.6333, 5)
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, se.EstacaoID, found[0].EstacaoID)
	assert.Equal(t, paulista.EstacaoID, found[1].EstacaoID)
	require.NotNil(t, found[1].DistanciaKm)
	assert.InDelta(t, 2.6, *found[1].DistanciaKm, 0.5)

	_, err = f.stations.Nearby(ctx, 10, 10, 1)
	assertKind(t, apperror.KindNotFound, err)

	_, err = f.stations.Nearby(ctx, 91, 0, 1)
	assertKind(t, apperror.KindInvalidRequest, err)

	fc, err := f.stations.FeatureCollection(ctx)
	require.NoError(t, err)
	assert.Len(t, fc.Features, 3)
	assert.Equal(t, "Sé", fc.Features[0].Properties["nome"])
}
