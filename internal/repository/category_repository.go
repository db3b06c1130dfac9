// Package repository contains data access logic for the streaming catalog.
// This file defines the repository for the three category tables. Categories
// are read-only from the gateway's perspective: rows are created by seeding
// or administrative mutation, never by this layer.
package repository

import (
	"context"
	"database/sql"

	"github.com/ekincan/iptv-gateway/internal/model"
)

// CategoryRepo manages read access to live, VOD and series categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the given DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// LiveCategories returns all live categories ordered by (sort_order, name).
func (r *CategoryRepo) LiveCategories(ctx context.Context) ([]model.LiveCategory, error) {
	const q = `SELECT id, name, sort_order FROM live_categories ORDER BY sort_order, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.LiveCategory, 0)
	for rows.Next() {
		var c model.LiveCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// VodCategories returns all VOD categories ordered by (sort_order, name).
func (r *CategoryRepo) VodCategories(ctx context.Context) ([]model.VodCategory, error) {
	const q = `SELECT id, name, sort_order FROM vod_categories ORDER BY sort_order, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.VodCategory, 0)
	for rows.Next() {
		var c model.VodCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// SeriesCategories returns all series categories ordered by (sort_order, name).
func (r *CategoryRepo) SeriesCategories(ctx context.Context) ([]model.SeriesCategory, error) {
	const q = `SELECT id, name, sort_order FROM series_categories ORDER BY sort_order, name`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.SeriesCategory, 0)
	for rows.Next() {
		var c model.SeriesCategory
		if err := rows.Scan(&c.ID, &c.Name, &c.SortOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
