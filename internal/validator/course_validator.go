package validator

import (
	"fmt"
	"math"
	"strings"

	"learnhub/internal/entity"
)

// ValidateCourse checks a full course payload (create).
func ValidateCourse(title, description, category string, price float64) []string {
	var messages []string

	switch {
	case title == "":
		messages = append(messages, "Title is required.")
	case len(title) < 5:
		messages = append(messages, "Title must be at least 5 characters long.")
	case len(title) > 50:
		messages = append(messages, "Title cannot exceed 50 characters.")
	}

	if len(description) > 500 {
		messages = append(messages, "Description cannot exceed 500 characters.")
	}

	switch {
	case category == "":
		messages = append(messages, "Category is required.")
	case !entity.ValidCategory(category):
		messages = append(messages, fmt.Sprintf("Category must be one of the following: %s.", strings.Join(entity.Categories, ", ")))
	}

	messages = append(messages, validatePrice(price)...)

	return messages
}

// ValidateCourseUpdate checks only the fields present in a partial update.
func ValidateCourseUpdate(title, description, category *string, price *float64) []string {
	var messages []string

	if title != nil {
		switch {
		case len(*title) < 5:
			messages = append(messages, "Title must be at least 5 characters long.")
		case len(*title) > 50:
			messages = append(messages, "Title cannot exceed 50 characters.")
		}
	}

	if description != nil && len(*description) > 500 {
		messages = append(messages, "Description cannot exceed 500 characters.")
	}

	if category != nil && !entity.ValidCategory(*category) {
		messages = append(messages, fmt.Sprintf("Category must be one of the following: %s.", strings.Join(entity.Categories, ", ")))
	}

	if price != nil {
		messages = append(messages, validatePrice(*price)...)
	}

	return messages
}

func validatePrice(price float64) []string {
	var messages []string

	if price <= 0 {
		messages = append(messages, "Price must be a positive number.")
	}

	// More than 2 fractional digits
	scaled := price * 100
	if math.Abs(scaled-math.Round(scaled)) > 1e-9 {
		messages = append(messages, "Price can have up to 2 decimal places.")
	}

	return messages
}
