package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/carsawa/site/listing"
	"github.com/carsawa/site/pagination"
)

// envelope covers the response shapes seen from the listings service.
// Items may arrive under any of the collection keys.
type envelope struct {
	Cars       json.RawMessage `json:"cars"`
	Items      json.RawMessage `json:"items"`
	Data       json.RawMessage `json:"data"`
	Dealers    json.RawMessage `json:"dealers"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	Pages      int             `json:"pages"`
	TotalPages int             `json:"totalPages"`
}

func (e envelope) items() json.RawMessage {
	for _, raw := range []json.RawMessage{e.Cars, e.Items, e.Data, e.Dealers} {
		if len(raw) > 0 && !bytes.Equal(raw, []byte("null")) {
			return raw
		}
	}
	return nil
}

func isArray(body []byte) bool {
	body = bytes.TrimSpace(body)
	return len(body) > 0 && body[0] == '['
}

// decodePage decodes either an envelope or a bare array. A bare array is
// the whole collection, so the requested page is cut from it here.
func decodePage[T any](body []byte, page, pageSize int, validate func(T) error) (listing.Page[T], error) {
	var out listing.Page[T]

	if isArray(body) {
		var all []T
		if err := json.Unmarshal(body, &all); err != nil {
			return out, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		out.Total = len(all)
		out.TotalPages = pagination.TotalPages(out.Total, pageSize)
		out.Page = pagination.Clamp(page, out.TotalPages)
		from, to := pagination.Bounds(out.Page, pageSize, out.Total)
		out.Items = all[from:to]
	} else {
		var env envelope
		if err := json.Unmarshal(body, &env); err != nil {
			return out, fmt.Errorf("%w: %w", ErrDecode, err)
		}
		if raw := env.items(); raw != nil {
			if err := json.Unmarshal(raw, &out.Items); err != nil {
				return out, fmt.Errorf("%w: items: %w", ErrDecode, err)
			}
		}
		out.Total = env.Total
		out.Page = env.Page
		if out.Page < 1 {
			out.Page = page
		}
		out.TotalPages = env.TotalPages
		if out.TotalPages == 0 {
			out.TotalPages = env.Pages
		}
		if out.TotalPages == 0 {
			out.TotalPages = pagination.TotalPages(out.Total, pageSize)
		}
	}

	if out.Items == nil {
		out.Items = []T{}
	}
	for _, item := range out.Items {
		if err := validate(item); err != nil {
			return listing.Page[T]{Items: []T{}}, fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}
	return out, nil
}

// single is the wrapper some endpoints put around one record.
type single struct {
	Car    json.RawMessage `json:"car"`
	Dealer json.RawMessage `json:"dealer"`
	Data   json.RawMessage `json:"data"`
}

// decodeOne decodes a record that is either the body itself or wrapped under
// key ("car" or "dealer") or "data".
func decodeOne[T any](body []byte, key string, validate func(T) error) (T, error) {
	var v T
	var w single
	if err := json.Unmarshal(body, &w); err != nil {
		return v, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	raw := json.RawMessage(body)
	wrapped := w.Data
	if key == "car" && isObject(w.Car) {
		wrapped = w.Car
	} else if key == "dealer" && isObject(w.Dealer) && !looksLikeCar(body) {
		wrapped = w.Dealer
	}
	if isObject(wrapped) {
		raw = wrapped
	}

	if err := json.Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	if err := validate(v); err != nil {
		return v, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	return v, nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// looksLikeCar tells a bare car body, which embeds "dealer", apart from a
// {"dealer": {...}} wrapper.
func looksLikeCar(body []byte) bool {
	var probe struct {
		Make  *string `json:"make"`
		Model *string `json:"model"`
	}
	return json.Unmarshal(body, &probe) == nil && (probe.Make != nil || probe.Model != nil)
}

func validateListing(l listing.Listing) error { return l.Validate() }

var errMissingDealerID = errors.New("dealer id is required")

func validateDealer(d listing.Dealer) error {
	if d.ID == "" {
		return errMissingDealerID
	}
	return nil
}
