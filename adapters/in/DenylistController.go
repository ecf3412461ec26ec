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
	"context"
	"github.com/gofiber/fiber/v2"
	adapterentities "linkguard/adapters/entities"
	"linkguard/domain/services/denylist"
	"linkguard/logging"
)

type DenylistController struct {
	reloader denylist.Reloader
	logger   logging.Logger
}

func NewDenylistController(reloader denylist.Reloader, logger logging.Logger) DenylistController {
	return DenylistController{reloader: reloader, logger: logger}
}

// Reload
// @Summary		Reloads the local denylist from its source
// @Tags		denylist
// @Produce		json
// @Success		200 {object} adapterentities.ReloadResponse
// @Failure		500 {object} adapterentities.ReloadResponse
// @Security	ApiKey
// @Router      /denylist/reload [post]
func (d *DenylistController) Reload(c *fiber.Ctx) error {
	entries, err := d.reloader.Reload(context.Background())
	if err != nil {
		d.logger.Errorw("Denylist reload failed", "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(adapterentities.ReloadResponse{Entries: entries, Error: err.Error()})
	}

	d.logger.Infow("Denylist reloaded", "entries", entries)

	return c.Status(fiber.StatusOK).JSON(adapterentities.ReloadResponse{Entries: entries})
}
