/*
 *    Copyright 2023 iFood
 *
 *    Licensed under the Apache License, Version 2.0 (the "License");
 *    you may not use this file except in compliance with the License.
 *    You may obtain a copy of the License at
 *
 *      http://www.apache.org/licenses/LICENSE-2.0
 *
 *    Unless required by applicable law or agreed to in writing, software
 *    distributed under the License is distributed on an "AS IS" BASIS,
 *    WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 *    See the License for the specific language governing permissions and
 *    limitations under the License.
 */

package in

import (
	"errors"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	adapterentities "linkguard/adapters/entities"
	"linkguard/domain/entities"
	"linkguard/domain/services/verdict"
	"linkguard/logging"
)

type VisitController struct {
	validate  *validator.Validate
	scheduler verdict.Scheduler
	logger    logging.Logger
}

func NewVisitController(scheduler verdict.Scheduler, logger logging.Logger) VisitController {
	return VisitController{scheduler: scheduler, logger: logger, validate: validator.New()}
}

// RegisterVisit
// @Summary		Registers a page visit for a background check
// @Tags		extension
// @Accept		json
// @Produce		json
// @Param		request	body	adapterentities.VisitRequest	true	"Visited page"
// @Success		202 {object} adapterentities.VisitResponse
// @Failure		400 {object} adapterentities.ErrorResponse
// @Failure		503 {object} adapterentities.ErrorResponse
// @Security	ApiKey
// @Router      /visits [post]
func (v *VisitController) RegisterVisit(c *fiber.Ctx) error {
	request := &adapterentities.VisitRequest{}

	if err := c.BodyParser(request); err != nil {
		v.logger.Errorw("Could not parse visit", "error", err)
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: urlRequiredMessage})
	}

	if err := v.validate.Struct(request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: urlRequiredMessage})
	}

	checkID, err := v.scheduler.Schedule(request.URL, entities.OriginPageVisit)
	switch {
	case errors.Is(err, entities.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(adapterentities.ErrorResponse{Error: urlRequiredMessage})
	case err != nil:
		v.logger.Errorw("Failed to schedule page visit", "error", err, "url", request.URL)
		return c.Status(fiber.StatusServiceUnavailable).JSON(adapterentities.ErrorResponse{Error: err.Error()})
	}

	return c.Status(fiber.StatusAccepted).JSON(adapterentities.VisitResponse{
		Message:     "URL received",
		ReceivedURL: request.URL,
		CheckID:     checkID,
	})
}
