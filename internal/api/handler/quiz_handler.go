package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/quizdeck/quiz-api/internal/api/metrics"
	"github.com/quizdeck/quiz-api/internal/api/middleware"
	"github.com/quizdeck/quiz-api/internal/core/domain"
	"github.com/quizdeck/quiz-api/internal/core/ports"
	"github.com/quizdeck/quiz-api/internal/problem"
)

// QuizHandler serves quiz authoring routes.
type QuizHandler struct {
	quizService ports.QuizService
}

func NewQuizHandler(quizService ports.QuizService) *QuizHandler {
	return &QuizHandler{quizService: quizService}
}

// Create stores a new quiz authored by the caller.
//
// @Summary      Create a quiz
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        body  body      domain.Quiz  true  "Quiz definition"
// @Success      201   {object}  domain.Quiz
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Router       /quiz [post]
func (h *QuizHandler) Create(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return problem.AuthorizationFailure("Missing authentication claims.")
	}

	var quiz domain.Quiz
	if err := c.Bind(&quiz); err != nil {
		return problem.Parse().
			WithDetail("There was a problem parsing part of the request.").
			WithCause(err)
	}

	created, err := h.quizService.Create(c.Request().Context(), claims, &quiz)
	if err != nil {
		return err
	}

	metrics.QuizzesCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, created)
}

// Get fetches a quiz by id. No authentication required.
//
// @Summary      Get a quiz
// @Tags         quiz
// @Produce      json
// @Param        id   path      string  true  "Quiz id"
// @Success      200  {object}  domain.Quiz
// @Failure      400  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /quiz/{id} [get]
func (h *QuizHandler) Get(c echo.Context) error {
	id, err := ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	quiz, err := h.quizService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, quiz)
}

// Delete removes a quiz owned by the caller (or any quiz, for admins).
//
// @Summary      Delete a quiz
// @Tags         quiz
// @Produce      json
// @Param        id   path      string  true  "Quiz id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]any
// @Failure      404  {object}  map[string]any
// @Router       /quiz/{id} [delete]
func (h *QuizHandler) Delete(c echo.Context) error {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		return problem.AuthorizationFailure("Missing authentication claims.")
	}

	id, err := ParseID(c.Param("id"))
	if err != nil {
		return err
	}

	if err := h.quizService.Delete(c.Request().Context(), claims, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]string{"deleted": id.String()})
}
