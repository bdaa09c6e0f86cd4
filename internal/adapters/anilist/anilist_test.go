package anilist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Guilhem-Bonnet/bgmi-go/internal/app"
	"github.com/Guilhem-Bonnet/bgmi-go/internal/domain"
)

// 2026-10-21 est un mercredi.
var fixedNow = time.Date(2026, 10, 21, 12, 0, 0, 0, time.UTC)

func TestClient_FetchCalendar_PaginatesAndDedups(t *testing.T) {
	friday := time.Date(2026, 10, 23, 15, 0, 0, 0, time.UTC).Unix()
	sunday := time.Date(2026, 10, 25, 9, 0, 0, 0, time.UTC).Unix()

	var pages []int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		page := int(req.Variables["page"].(float64))
		pages = append(pages, page)

		w.Header().Set("Content-Type", "application/json")
		switch page {
		case 1:
			_, _ = w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":true},"airingSchedules":[
				{"airingAt":` + itoa(friday) + `,"episode":8,"media":{"id":1,"title":{"romaji":"Sousou no Frieren"},"coverImage":{"large":"https://img/1.png"}}},
				{"airingAt":` + itoa(friday) + `,"episode":1,"media":{"id":2,"isAdult":true,"title":{"romaji":"Hidden"}}}
			]}}}`))
		default:
			_, _ = w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":false},"airingSchedules":[
				{"airingAt":` + itoa(sunday) + `,"episode":9,"media":{"id":1,"title":{"romaji":"Sousou no Frieren"}}},
				{"airingAt":` + itoa(sunday) + `,"episode":3,"media":{"id":3,"title":{"english":"Dandadan"}}}
			]}}}`))
		}
	}))
	defer ts.Close()

	c := New(ts.URL, 100).WithLocation(time.UTC).WithClock(func() time.Time { return fixedNow })
	list, groups, err := c.FetchCalendar(context.Background())
	if err != nil {
		t.Fatalf("FetchCalendar: %v", err)
	}
	if len(groups) != 0 {
		t.Fatalf("expected no subtitle groups, got %v", groups)
	}
	if len(pages) != 2 {
		t.Fatalf("expected 2 pages, got %v", pages)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 shows, got %+v", list)
	}
	if list[0].Name != "Sousou no Frieren" || list[0].UpdateTime != "Fri" || list[0].Episode != 7 {
		t.Fatalf("unexpected first show: %+v", list[0])
	}
	if list[0].Cover != "https://img/1.png" || list[0].Status != domain.StatusNormal {
		t.Fatalf("unexpected first show: %+v", list[0])
	}
	if list[1].Name != "Dandadan" || list[1].UpdateTime != "Sun" {
		t.Fatalf("unexpected second show: %+v", list[1])
	}
}

func TestClient_FetchCalendar_GraphQLError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"errors":[{"message":"Too Many Requests"}]}`))
	}))
	defer ts.Close()

	_, _, err := New(ts.URL, 100).FetchCalendar(context.Background())
	var ce *app.CodedError
	if !errors.As(err, &ce) || ce.Code != app.CodeSourceHTTP {
		t.Fatalf("expected source_http CodedError, got %v", err)
	}
}

func TestClient_FetchCalendar_HTTPStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer ts.Close()

	_, _, err := New(ts.URL, 100).FetchCalendar(context.Background())
	var ce *app.CodedError
	if !errors.As(err, &ce) || ce.Code != app.CodeSourceHTTP {
		t.Fatalf("expected source_http CodedError, got %v", err)
	}
}

func itoa(n int64) string {
	b, _ := json.Marshal(n)
	return string(b)
}
