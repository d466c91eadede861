package postgres

import (
	"gorm.io/gorm"

	"github.com/sankalan-edu/campus-service/internal/repositories"
)

// applyPaginationAndSort applies pagination and sorting with the sort column
// checked against a whitelist.
func applyPaginationAndSort(query *gorm.DB, sortBy, sortOrder string, limit, offset int) *gorm.DB {
	allowedSortColumns := map[string]bool{
		"created_at":     true,
		"updated_at":     true,
		"id":             true,
		"title":          true,
		"subject":        true,
		"exam_year":      true,
		"view_count":     true,
		"download_count": true,
		"starts_at":      true,
	}

	if sortBy == "" || !allowedSortColumns[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "ASC" {
		sortOrder = "DESC"
	} else {
		sortOrder = "ASC"
	}

	query = query.Order(sortBy + " " + sortOrder)

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	return query
}

// applyCatalogFilters applies the branch/semester/subject filters shared by
// the paper and material listings.
func applyCatalogFilters(query *gorm.DB, branch, semester, subject *string) *gorm.DB {
	if branch != nil && *branch != "" {
		query = query.Where("branch = ?", *branch)
	}
	if semester != nil && *semester != "" {
		query = query.Where("semester = ?", *semester)
	}
	if subject != nil && *subject != "" {
		query = query.Where("subject = ?", *subject)
	}
	return query
}

func applyPaperFilters(query *gorm.DB, filters repositories.PaperFilters) *gorm.DB {
	query = applyCatalogFilters(query, stringPtr(filters.Branch), stringPtr(filters.Semester), filters.Subject)
	if filters.ExamYear != nil && *filters.ExamYear > 0 {
		query = query.Where("exam_year = ?", *filters.ExamYear)
	}
	if filters.Query != nil && *filters.Query != "" {
		like := "%" + *filters.Query + "%"
		query = query.Where("title ILIKE ? OR subject ILIKE ?", like, like)
	}
	return query
}

func applyMaterialFilters(query *gorm.DB, filters repositories.MaterialFilters) *gorm.DB {
	query = applyCatalogFilters(query, stringPtr(filters.Branch), stringPtr(filters.Semester), filters.Subject)
	if filters.Type != nil && *filters.Type != "" {
		query = query.Where("type = ?", *filters.Type)
	}
	if filters.Query != nil && *filters.Query != "" {
		like := "%" + *filters.Query + "%"
		query = query.Where("title ILIKE ? OR subject ILIKE ?", like, like)
	}
	return query
}

// stringPtr converts a typed string pointer to *string for the shared filter
// helper.
func stringPtr[T ~string](v *T) *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}
