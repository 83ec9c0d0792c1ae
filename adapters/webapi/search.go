package webapi

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/umoja4life/fatashi"
	"github.com/umoja4life/fatashi/service"
	"go.uber.org/zap"
	"net/http"
	"strconv"
	"strings"
	"time"
)

type lookupView struct {
	Query     string          `json:"query"`
	Field     string          `json:"field"`
	Pattern   string          `json:"pattern"`
	Qualifier string          `json:"qualifier,omitempty"`
	Highlight string          `json:"highlight"`
	Count     int             `json:"count"`
	Entries   []fatashi.Entry `json:"entries"`
}

func newLookupView(format fatashi.DictionaryFormat, lookup fatashi.Lookup) lookupView {
	view := lookupView{
		Query:     lookup.Plan.Query.String(),
		Field:     lookup.Plan.Field.String(),
		Pattern:   lookup.Plan.Pattern,
		Qualifier: lookup.Plan.Qualifier,
		Highlight: lookup.Plan.Highlight,
		Count:     lookup.Count(),
		Entries:   make([]fatashi.Entry, 0, lookup.Count()),
	}
	for _, res := range lookup.Results {
		view.Entries = append(view.Entries, res.Record.Entry(format.InternalFields))
	}

	return view
}

func entries(format fatashi.DictionaryFormat, records []fatashi.Record) []fatashi.Entry {
	res := make([]fatashi.Entry, 0, len(records))
	for _, record := range records {
		res = append(res, record.Entry(format.InternalFields))
	}

	return res
}

func intParam(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}

	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, name+" must be a number")
	}

	return v, nil
}

// Dictionary registers the search, list and status endpoints on group.
func Dictionary(group *echo.Group, svc *service.Service, logger *zap.Logger) {
	if logger == nil {
		logger = zap.NewNop()
	}

	group.GET("/search/:chain", func(c echo.Context) error {
		kind, err := service.ParseChainKind(c.Param("chain"))
		if err != nil {
			return err
		}
		depth, err := intParam(c, "depth", 1)
		if err != nil {
			return err
		}
		tokens := strings.Fields(c.QueryParam("q"))
		if len(tokens) == 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "q cannot be left blank",
			})
		}

		queryID := uuid.NewString()
		start := time.Now()
		res, err := svc.Search(c.Request().Context(), kind, depth, tokens)
		if err != nil {
			return err
		}

		format := res.Source.Format()
		lookups := make([]lookupView, 0, len(res.Lookups))
		for _, lookup := range res.Lookups {
			lookups = append(lookups, newLookupView(format, lookup))
		}
		logger.Info("search",
			zap.String("queryId", queryID),
			zap.String("chain", string(kind)),
			zap.Int("depth", depth),
			zap.Strings("tokens", tokens),
			zap.Duration("elapsed", time.Since(start)),
		)

		return c.JSON(http.StatusOK, map[string]any{
			"queryId":     queryID,
			"source":      res.Source.Name(),
			"lookups":     lookups,
			"errors":      res.Errors,
			"executionMs": float64(time.Since(start)) / float64(time.Millisecond),
		})
	})

	group.GET("/list/:chain", func(c echo.Context) error {
		kind, err := service.ParseChainKind(c.Param("chain"))
		if err != nil {
			return err
		}
		depth, err := intParam(c, "depth", 1)
		if err != nil {
			return err
		}
		n, err := intParam(c, "n", 0)
		if err != nil {
			return err
		}

		res, err := svc.List(c.Request().Context(), kind, depth, n)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"source":  res.Source.Name(),
			"entries": entries(res.Source.Format(), res.Records),
		})
	})

	group.GET("/browse/:chain", func(c echo.Context) error {
		kind, err := service.ParseChainKind(c.Param("chain"))
		if err != nil {
			return err
		}
		depth, err := intParam(c, "depth", 1)
		if err != nil {
			return err
		}
		n, err := intParam(c, "n", 0)
		if err != nil {
			return err
		}
		from := c.QueryParam("from")
		if from == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{
				"error": "from cannot be left blank",
			})
		}

		res, err := svc.Browse(c.Request().Context(), kind, depth, from, n)
		if err != nil {
			return err
		}

		return c.JSON(http.StatusOK, map[string]any{
			"source":  res.Source.Name(),
			"entries": entries(res.Source.Format(), res.Records),
		})
	})

	group.GET("/status", func(c echo.Context) error {
		status := map[string][]string{}
		for _, kind := range []service.ChainKind{service.ChainKamusi, service.ChainMethali, service.ChainTest} {
			chain, err := svc.Chain(kind)
			if err != nil {
				return err
			}
			if len(chain) == 0 {
				continue
			}

			lines, err := svc.Status(c.Request().Context(), kind)
			if err != nil {
				return err
			}
			status[string(kind)] = lines
		}

		return c.JSON(http.StatusOK, map[string]any{
			"options": svc.Options,
			"status":  status,
		})
	})
}
