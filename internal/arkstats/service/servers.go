package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/Rezosh/server-stats-website/internal/arkstats/domain"
	"github.com/Rezosh/server-stats-website/internal/arkstats/store"
	"github.com/Rezosh/server-stats-website/pkg/arkweb"
)

var ErrServerNotFound = errors.New("server_not_found")

// PerPage is how many servers a browse page shows.
const PerPage = 12

// HistorySamples caps how many population samples a server detail returns.
const HistorySamples = 99

// ServerService exposes the public server browser: the paged, fuzzily
// searchable server list and per-server detail with population history.
type ServerService struct {
	Store store.Store
	Ark   *arkweb.Client

	// Cluster restricts which official cluster the browser shows.
	Cluster string
}

// ServerPage is one page of the server browser.
type ServerPage struct {
	Servers    []arkweb.Server
	Page       int
	TotalPages int
	Total      int
}

// ServerDetail is a single server plus its recent population history.
type ServerDetail struct {
	Server  arkweb.Server
	History []domain.PlayerSample
}

type serverNames []arkweb.Server

func (s serverNames) String(i int) string { return s[i].Name }
func (s serverNames) Len() int            { return len(s) }

// List returns one page of servers, optionally narrowed by a fuzzy name
// query. Pages are 1-based; out-of-range pages return an empty slice with
// TotalPages intact so the caller can clamp.
func (s *ServerService) List(ctx context.Context, query string, page int) (ServerPage, error) {
	servers, err := s.Ark.Servers(ctx, s.Cluster)
	if err != nil {
		return ServerPage{}, err
	}
	sort.Slice(servers, func(i, j int) bool { return servers[i].Name < servers[j].Name })

	query = strings.TrimSpace(query)
	if query != "" {
		matches := fuzzy.FindFrom(query, serverNames(servers))
		ranked := make([]arkweb.Server, 0, len(matches))
		for _, m := range matches {
			ranked = append(ranked, servers[m.Index])
		}
		servers = ranked
	}

	if page < 1 {
		page = 1
	}

	total := len(servers)
	totalPages := (total + PerPage - 1) / PerPage
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * PerPage
	if start > total {
		start = total
	}
	end := start + PerPage
	if end > total {
		end = total
	}

	return ServerPage{
		Servers:    servers[start:end],
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
	}, nil
}

// Get returns one server by its search handle along with its recent
// population history.
func (s *ServerService) Get(ctx context.Context, handle string) (ServerDetail, error) {
	servers, err := s.Ark.Servers(ctx, s.Cluster)
	if err != nil {
		return ServerDetail{}, err
	}

	for _, srv := range servers {
		if srv.SearchHandle == handle {
			history, err := s.Store.PlayerHistory().Recent(ctx, srv.Name, HistorySamples)
			if err != nil {
				return ServerDetail{}, err
			}
			return ServerDetail{Server: srv, History: history}, nil
		}
	}

	return ServerDetail{}, ErrServerNotFound
}
