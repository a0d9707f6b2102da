package services

import (
	"context"
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"ecodrive/apperror"
	"ecodrive/models"
	"ecodrive/repository"
)

const (
	DefaultSearchRadiusKm = 5.0
	MaxSearchRadiusKm     = 50.0
)

// Nearby returns stations within radiusKm of (lat, lon) ordered by distance. The store
// narrows candidates to a bounding box; the haversine distance decides.
func (s *ChargingStationService) Nearby(ctx context.Context, lat, lon, radiusKm float64) ([]models.ChargingStationResponse, error) {
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil, apperror.Invalid("Coordenadas inválidas.")
	}
	if radiusKm <= 0 {
		radiusKm = DefaultSearchRadiusKm
	}
	radiusKm = math.Min(radiusKm, MaxSearchRadiusKm)

	center := orb.Point{lon, lat}
	bound := geo.NewBoundAroundPoint(center, radiusKm*1000)

	candidates, err := repository.New[models.ChargingStation](s.db).FindWhere(ctx,
		"latitude BETWEEN ? AND ? AND longitude BETWEEN ? AND ?",
		bound.Min.Lat(), bound.Max.Lat(), bound.Min.Lon(), bound.Max.Lon(),
	)
	if err != nil {
		return nil, s.fail("nearby", err)
	}

	out := make([]models.ChargingStationResponse, 0, len(candidates))
	for i := range candidates {
		st := &candidates[i]
		km := geo.DistanceHaversine(center, orb.Point{st.Longitude, st.Latitude}) / 1000
		if km > radiusKm {
			continue
		}
		resp := st.ToResponse()
		rounded := math.Round(km*1000) / 1000
		resp.DistanciaKm = &rounded
		out = append(out, resp)
	}
	if len(out) == 0 {
		return nil, apperror.NotFoundf("Nenhuma estação de recarga encontrada num raio de %.1f km", radiusKm)
	}

	sort.SliceStable(out, func(i, j int) bool { return *out[i].DistanciaKm < *out[j].DistanciaKm })
	return out, nil
}

// FeatureCollection renders every station as a GeoJSON point feature.
func (s *ChargingStationService) FeatureCollection(ctx context.Context) (*geojson.FeatureCollection, error) {
	stations, err := repository.New[models.ChargingStation](s.db).FindAll(ctx)
	if err != nil {
		return nil, s.fail("geojson", err)
	}

	fc := geojson.NewFeatureCollection()
	for i := range stations {
		st := &stations[i]
		f := geojson.NewFeature(orb.Point{st.Longitude, st.Latitude})
		f.ID = st.ID
		f.Properties["estacaoId"] = st.ID
		f.Properties["nome"] = st.Nome
		f.Properties["bairroId"] = st.BairroID
		f.Properties["tipoCarregador"] = st.TipoCarregador
		f.Properties["precoPorKwh"] = st.PrecoPorKwh
		fc.Append(f)
	}
	return fc, nil
}
