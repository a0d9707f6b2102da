package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"ecodrive/database/dbtest"
	"ecodrive/events"
	"ecodrive/services"
	"ecodrive/utils"
)

type api struct {
	t      *testing.T
	router *gin.Engine
}

func newAPI(t *testing.T) *api {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	log := zap.NewNop()
	tokens := utils.NewTokenIssuer("test-secret", time.Hour)
	svc := Services{
		Neighborhoods:       services.NewNeighborhoodService(db, log),
		Dealerships:         services.NewDealershipService(db, log),
		ChargingStations:    services.NewChargingStationService(db, log),
		SustainableStations: services.NewSustainableStationService(db, log),
		EnergySources:       services.NewEnergySourceService(db, log),
		StationStatuses:     services.NewStationStatusService(db, log, events.NopPublisher{}),
		ChargingHistory:     services.NewChargingHistoryService(db, log),
		ChargingExpenses:    services.NewChargingExpenseService(db, log),
		Reservations:        services.NewReservationService(db, log),
		Vehicles:            services.NewVehicleService(db, log),
		Users:               services.NewUserService(db, log, tokens),
	}
	return &api{t: t, router: New(log, svc, tokens)}
}

func (a *api) do(method, path string, body interface{}, header ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(a.t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, "http://eco.test"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func href(t *testing.T, links interface{}, rel string) string {
	t.Helper()
	m, ok := links.(map[string]interface{})
	require.True(t, ok, "links: %v", links)
	link, ok := m[rel].(map[string]interface{})
	require.True(t, ok, "missing rel %q in %v", rel, m)
	return link["href"].(string)
}

func TestHealth(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestRequestIDIsPropagated(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/health", nil, requestIDHeader, "abc-123")
	assert.Equal(t, "abc-123", w.Header().Get(requestIDHeader))
}

func TestEndToEndScenario(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/bairros", map[string]string{"nome": "Centro"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "http://eco.test/bairros/1", w.Header().Get("Location"))
	bairro := decode(t, w)
	assert.EqualValues(t, 1, bairro["bairroId"])
	assert.Equal(t, "http://eco.test/bairros/1", href(t, bairro["_links"], "self"))
	assert.Equal(t, "http://eco.test/bairros", href(t, bairro["_links"], "bairros"))

	station := map[string]interface{}{
		"nome": "Estação A", "bairroId": 1, "latitude": -23.55, "longitude": -46.63,
		"tipoCarregador": "CCS", "precoPorKwh": 1.5,
	}
	w = a.do(http.MethodPost, "/estacoes-recarga", station)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "http://eco.test/estacoes-recarga/1", href(t, decode(t, w)["_links"], "self"))

	station["bairroId"] = 999
	w = a.do(http.MethodPost, "/estacoes-recarga", station)
	require.Equal(t, http.StatusNotFound, w.Code)
	body := decode(t, w)
	assert.Contains(t, body["message"], "999")
	assert.Equal(t, "uri=/estacoes-recarga", body["details"])

	w = a.do(http.MethodDelete, "/bairros/1", nil)
	require.Equal(t, http.StatusConflict, w.Code)
	body = decode(t, w)
	assert.Equal(t, "Operação não permitida devido a violação de integridade de dados.", body["message"])
	assert.NotEmpty(t, body["details"])

	w = a.do(http.MethodDelete, "/estacoes-recarga/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	w = a.do(http.MethodDelete, "/bairros/1", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = a.do(http.MethodGet, "/bairros/1", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPaginationEnvelope(t *testing.T) {
	a := newAPI(t)
	for i := 1; i <= 15; i++ {
		w := a.do(http.MethodPost, "/bairros", map[string]string{"nome": fmt.Sprintf("Bairro %02d", i)})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := a.do(http.MethodGet, "/bairros", nil)
	require.Equal(t, http.StatusOK, w.Code)
	first := decode(t, w)
	embedded := first["_embedded"].(map[string]interface{})["bairros"].([]interface{})
	assert.Len(t, embedded, 10)
	page := first["page"].(map[string]interface{})
	assert.EqualValues(t, 15, page["totalElements"])
	assert.EqualValues(t, 2, page["totalPages"])
	assert.EqualValues(t, 0, page["number"])
	assert.Equal(t, "http://eco.test/bairros?page=1&size=10", href(t, first["_links"], "next"))
	assert.NotContains(t, first["_links"], "prev")

	w = a.do(http.MethodGet, "/bairros?page=1&size=10", nil)
	second := decode(t, w)
	embedded = second["_embedded"].(map[string]interface{})["bairros"].([]interface{})
	assert.Len(t, embedded, 5)
	assert.NotContains(t, second["_links"], "next")
	assert.Equal(t, "http://eco.test/bairros?page=0&size=10", href(t, second["_links"], "prev"))
}

func TestValidationErrors(t *testing.T) {
	a := newAPI(t)

	w := a.do(http.MethodPost, "/bairros", map[string]string{"nome": ""})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w), "nome")

	w = a.do(http.MethodPost, "/fontes-energia", map[string]string{"tipoEnergia": "Nuclear"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["tipoEnergia"], "Paineis Solares")

	w = a.do(http.MethodPost, "/bairros", `{"nome":`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Corpo da requisição inválido", decode(t, w)["message"])

	w = a.do(http.MethodGet, "/bairros/abc", nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["message"], "abc")
}

func TestPartialUpdate(t *testing.T) {
	a := newAPI(t)
	a.do(http.MethodPost, "/bairros", map[string]string{"nome": "Centro"})
	w := a.do(http.MethodPost, "/concessionarias", map[string]interface{}{
		"nome": "Eco Motors", "bairroId": 1, "marca": "BYD", "temEstacaoRecarga": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodPut, "/concessionarias/1", map[string]string{"marca": "Volvo"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, "Volvo", body["marca"])
	assert.Equal(t, "Eco Motors", body["nome"])
	assert.Equal(t, true, body["temEstacaoRecarga"])
}

func TestFinders(t *testing.T) {
	a := newAPI(t)
	a.do(http.MethodPost, "/bairros", map[string]string{"nome": "Vila Mariana"})

	w := a.do(http.MethodGet, "/bairros/busca?nome=MARIANA", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "http://eco.test/bairros/1", href(t, items[0]["_links"], "self"))

	w = a.do(http.MethodGet, "/bairros/busca?nome=Moema", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = a.do(http.MethodGet, "/bairros/busca", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/reservas/status/x", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/reservas/periodo?inicio=2025-01-01", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNearbyAndGeoJSON(t *testing.T) {
	a := newAPI(t)
	a.do(http.MethodPost, "/bairros", map[string]string{"nome": "Centro"})
	w := a.do(http.MethodPost, "/estacoes-recarga", map[string]interface{}{
		"nome": "Sé", "bairroId": 1, "latitude": -23.5503, "longitude": -46.6339,
		"tipoCarregador": "Tipo 2", "precoPorKwh": 1.2,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = a.do(http.MethodGet, "/estacoes-recarga/proximas?latitude=-23.5505&longitude=-46.6333&raioKm=2", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Contains(t, items[0], "distanciaKm")

	w = a.do(http.MethodGet, "/estacoes-recarga/proximas?longitude=-46.6", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = a.do(http.MethodGet, "/estacoes-recarga/geojson", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/geo+json", w.Header().Get("Content-Type"))
	assert.Equal(t, "FeatureCollection", decode(t, w)["type"])
}

func TestExportDownload(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodGet, "/gastos-carregamento/exportar", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), "gastos-carregamento.xlsx")
	// xlsx files are zip archives
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("PK")))

	w = a.do(http.MethodGet, "/gastos-carregamento/exportar?inicio=ontem", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginAndMe(t *testing.T) {
	a := newAPI(t)
	w := a.do(http.MethodPost, "/usuarios", map[string]string{
		"nome": "Ana", "email": "Ana@Eco.com", "senha": "segredo1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, decode(t, w), "senha")

	w = a.do(http.MethodPost, "/usuarios/login", map[string]string{"email": "ana@eco.com", "senha": "errada"})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotEmpty(t, decode(t, w)["message"])

	w = a.do(http.MethodPost, "/usuarios/login", map[string]string{"email": "ana@eco.com", "senha": "segredo1"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	token, _ := decode(t, w)["token"].(string)
	require.NotEmpty(t, token)

	w = a.do(http.MethodGet, "/usuarios/me", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, "/usuarios/me", nil, "Authorization", "Bearer not-a-token")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = a.do(http.MethodGet, "/usuarios/me", nil, "Authorization", "Bearer "+token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	me := decode(t, w)
	assert.Equal(t, "ana@eco.com", me["email"])
	assert.Equal(t, "http://eco.test/usuarios/1", href(t, me["_links"], "self"))
}

func TestDuplicateEmailIsRejected(t *testing.T) {
	a := newAPI(t)
	user := map[string]string{"nome": "Ana", "email": "ana@eco.com", "senha": "segredo1"}
	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/usuarios", user).Code)

	w := a.do(http.MethodPost, "/usuarios", user)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPageBeyondRangeIsEmpty(t *testing.T) {
	a := newAPI(t)
	for _, nome := range []string{"Centro", "Moema", "Pinheiros"} {
		require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/bairros", map[string]string{"nome": nome}).Code)
	}

	w := a.do(http.MethodGet, "/bairros?page=922337203685477581&size=10", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	embedded := body["_embedded"].(map[string]interface{})["bairros"].([]interface{})
	assert.Empty(t, embedded)
	assert.NotContains(t, body["_links"], "next")
	assert.EqualValues(t, 3, body["page"].(map[string]interface{})["totalElements"])
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	a := newAPI(t)
	for _, nome := range []string{"Centro", "Moema"} {
		require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/bairros", map[string]string{"nome": nome}).Code)
	}

	for _, q := range []string{"%25", "_"} {
		w := a.do(http.MethodGet, "/bairros/busca?nome="+q, nil)
		assert.Equal(t, http.StatusNotFound, w.Code, "nome=%s: %s", q, w.Body.String())
	}

	require.Equal(t, http.StatusCreated, a.do(http.MethodPost, "/bairros", map[string]string{"nome": "Vila 100% Verde"}).Code)
	w := a.do(http.MethodGet, "/bairros/busca?nome=%25", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, "Vila 100% Verde", items[0]["nome"])
}

func TestExpensePeriodIncludesWholeEndDay(t *testing.T) {
	a := newAPI(t)
	steps := []struct {
		path string
		body map[string]interface{}
	}{
		{"/bairros", map[string]interface{}{"nome": "Centro"}},
		{"/estacoes-recarga", map[string]interface{}{
			"nome": "Estação A", "bairroId": 1, "latitude": -23.55, "longitude": -46.63,
			"tipoCarregador": "CCS", "precoPorKwh": 1.5,
		}},
		{"/usuarios", map[string]interface{}{"nome": "Ana", "email": "ana@eco.com", "senha": "segredo1"}},
		{"/veiculos", map[string]interface{}{
			"usuarioId": 1, "marca": "BYD", "modelo": "Dolphin", "ano": 2024, "isEletrico": true,
		}},
		{"/historico-carregamento", map[string]interface{}{
			"usuarioId": 1, "veiculoId": 1, "estacaoId": 1,
			"dataCarregamento": "2025-03-01T14:00:00Z", "kwhConsumidos": 20.0,
		}},
		{"/gastos-carregamento", map[string]interface{}{
			"historicoId": 1, "custoTotal": 30.0, "dataGasto": "2025-03-01T15:00:00Z",
		}},
	}
	for _, s := range steps {
		w := a.do(http.MethodPost, s.path, s.body)
		require.Equal(t, http.StatusCreated, w.Code, "%s: %s", s.path, w.Body.String())
	}

	w := a.do(http.MethodGet, "/gastos-carregamento/periodo?inicio=2025-03-01&fim=2025-03-01", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var items []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &items))
	assert.Len(t, items, 1)

	w = a.do(http.MethodGet, "/gastos-carregamento/periodo?inicio=2025-02-01&fim=2025-02-28", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
