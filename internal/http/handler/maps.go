package handler

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"petcareapi/internal/service"
)

// Nearby search walks outward from the user; keyword search covers the whole
// city, so its default radius is much wider.
const (
	defaultNearbyRadius  = 1000
	defaultKeywordRadius = 50000
)

func queryCoordinates(c *fiber.Ctx) (lat, lng float64, err error) {
	lat, err = strconv.ParseFloat(c.Query("latitude"), 64)
	if err != nil {
		return 0, 0, err
	}
	lng, err = strconv.ParseFloat(c.Query("longitude"), 64)
	return lat, lng, err
}

func queryRadius(c *fiber.Ctx, def int) (int, error) {
	v := c.Query("radius")
	if v == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

// queryList collects repeated values of a query key, also splitting
// comma-separated entries.
func queryList(c *fiber.Ctx, key string) []string {
	var out []string
	for _, raw := range c.Context().QueryArgs().PeekMulti(key) {
		for _, v := range strings.Split(string(raw), ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

// GetNearbyByTypes searches for amenities around a coordinate, one query per
// "type" value.
func GetNearbyByTypes(svc service.AmenityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, lng, err := queryCoordinates(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid coordinates")
		}
		radius, err := queryRadius(c, defaultNearbyRadius)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid radius")
		}
		keywords := queryList(c, "type")
		if len(keywords) == 0 {
			keywords = []string{"veterinary_care"}
		}

		res, err := svc.SearchNearby(c.UserContext(), lat, lng, radius, keywords)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// SearchLocationByKeyword runs a text search constrained to place types.
func SearchLocationByKeyword(svc service.AmenityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		lat, lng, err := queryCoordinates(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid coordinates")
		}
		radius, err := queryRadius(c, defaultKeywordRadius)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid radius")
		}

		res, err := svc.SearchByKeyword(c.UserContext(), c.Query("keyword"), lat, lng, radius, queryList(c, "types"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// FilterLocations filters previously returned place ids against the cache by
// minimum rating and opening state.
func FilterLocations(svc service.AmenityService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		placeIDs := queryList(c, "placeIds")

		var minRating *float64
		if v := c.Query("minRating"); v != "" {
			r, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_INPUT", "invalid minRating")
			}
			minRating = &r
		}

		ids, err := svc.FilterLocations(c.UserContext(), placeIDs, minRating, c.Query("openNow"))
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(ids)
	}
}
