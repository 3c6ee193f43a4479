package lib

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"googlemaps.github.io/maps"
)

var ErrLocationNotFound = errors.New("location could not be resolved")

var mapsClient *maps.Client

func GetMapsClient() (*maps.Client, error) {
	if mapsClient != nil {
		return mapsClient, nil
	}
	cli, err := maps.NewClient(maps.WithAPIKey(os.Getenv("GEOCODING_API_KEY")))
	if err != nil {
		return nil, err
	}
	mapsClient = cli
	return cli, nil
}

// Geocoder resolves a human-entered location string to a coordinate. Returns
// ErrLocationNotFound when the provider has no result for the input.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (lat float64, lon float64, err error)
}

type mapsGeocoder struct{}

func (mapsGeocoder) Geocode(ctx context.Context, address string) (float64, float64, error) {
	cli, err := GetMapsClient()
	if err != nil {
		return 0, 0, err
	}
	results, err := cli.Geocode(ctx, &maps.GeocodingRequest{
		Address: address,
		Components: map[maps.Component]string{
			maps.ComponentCountry: "PL",
		},
	})
	if err != nil {
		return 0, 0, err
	}
	if len(results) == 0 {
		return 0, 0, ErrLocationNotFound
	}
	loc := results[0].Geometry.Location
	return loc.Lat, loc.Lng, nil
}

var geocoder Geocoder = mapsGeocoder{}

func GetGeocoder() Geocoder {
	return geocoder
}

// NewGeocoder replaces the geocoder instance with a custom implementation
func NewGeocoder(g Geocoder) {
	geocoder = g
}

type cachedCoord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// GeocodeCached resolves an address through the geocoder, caching hits in
// redis so repeated postal-code searches skip the Maps API. Cache failures are
// logged and ignored.
func GeocodeCached(ctx context.Context, address string) (float64, float64, error) {
	cacheKey := fmt.Sprintf("geocode:%s", address)
	rd := GetRedisClient()
	if rd != nil {
		if val, err := rd.Get(ctx, cacheKey).Result(); err == nil && val != "" {
			var c cachedCoord
			if err := json.Unmarshal([]byte(val), &c); err == nil {
				return c.Lat, c.Lon, nil
			}
		}
	}
	lat, lon, err := GetGeocoder().Geocode(ctx, address)
	if err != nil {
		return 0, 0, err
	}
	if rd != nil {
		b, _ := json.Marshal(&cachedCoord{Lat: lat, Lon: lon})
		if err := rd.SetEx(ctx, cacheKey, string(b), 24*time.Hour).Err(); err != nil {
			log.Printf("[redis] Error caching geocode result for %s: %s\n", address, err.Error())
		}
	}
	return lat, lon, nil
}
