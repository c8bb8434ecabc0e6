package rest

import (
	"time"

	"taskboard/internal/common"
	"taskboard/internal/server/models"
	"taskboard/internal/server/services"
)

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type categoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type categoryUpdateRequest struct {
	Name *string `json:"name"`
	Type *string `json:"type"`
}

type taskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	DueDate     string `json:"due_date"`
	CategoryID  string `json:"category_id"`
}

type userJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type categoryJSON struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type taskJSON struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     *time.Time `json:"due_date"`
	Status      string     `json:"status"`
	CategoryID  string     `json:"category_id"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

type userTaskCountJSON struct {
	Email     string `json:"email"`
	TaskCount int    `json:"tasks_count"`
}

type categoryTaskCountJSON struct {
	CategoryName string `json:"category_name"`
	TaskCount    int    `json:"task_count"`
}

type userTaskBreakdownJSON struct {
	Email      string                  `json:"email"`
	Categories []categoryTaskCountJSON `json:"categories"`
}

func toUserJSON(u *models.User) userJSON {
	return userJSON{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      string(u.Role),
		CreatedAt: u.CreatedAt,
	}
}

func toCategoryJSON(c *models.Category) categoryJSON {
	return categoryJSON{
		ID:        c.ID,
		Name:      c.Name,
		Type:      c.Type,
		IsDefault: c.IsDefault,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

func toTaskJSON(t *models.Task, now time.Time) taskJSON {
	return taskJSON{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status(now)),
		CategoryID:  t.CategoryID,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTaskListJSON(tasks []*models.Task, now time.Time) []taskJSON {
	out := make([]taskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskJSON(t, now))
	}
	return out
}

// toTaskInput converts the wire form of a task. An empty due_date stays nil;
// anything else must parse as RFC 3339 or a plain date.
func toTaskInput(r taskRequest) (services.TaskInput, error) {
	in := services.TaskInput{
		Title:       r.Title,
		Description: r.Description,
		CategoryID:  r.CategoryID,
	}

	if r.DueDate != "" {
		due, err := parseDueDate(r.DueDate)
		if err != nil {
			verr := common.NewValidationError()
			verr.Add("due_date", "is not a valid date")
			return services.TaskInput{}, verr
		}
		in.DueDate = &due
	}

	return in, nil
}

func parseDueDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
