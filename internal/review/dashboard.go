package review

import (
	"context"
	"time"

	"github.com/fadilmartias/careers/internal/dto"
	"github.com/fadilmartias/careers/internal/model"
	"github.com/fadilmartias/careers/internal/util"
	"github.com/sirupsen/logrus"
)

// Dashboard ties the API client to the local view state. Local state only
// changes after the server confirmed a change.
type Dashboard struct {
	Client *Client
	State  *State
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewDashboard(client *Client, pageSize int, log logrus.FieldLogger) *Dashboard {
	return &Dashboard{
		Client: client,
		State:  NewState(pageSize),
		log:    log,
		now:    time.Now,
	}
}

// Login authenticates and loads the record set.
func (d *Dashboard) Login(ctx context.Context, password string) error {
	if _, err := d.Client.Login(ctx, password); err != nil {
		return err
	}
	return d.Refresh(ctx)
}

// Refresh reloads every record. The search term survives, the page goes
// back to 1.
func (d *Dashboard) Refresh(ctx context.Context) error {
	apps, err := d.Client.ListApplications(ctx)
	if err != nil {
		return err
	}
	d.State.SetApplications(apps)
	return nil
}

// ChangeStatus updates a record on the server and mirrors the stored result
// into the list and the detail view.
func (d *Dashboard) ChangeStatus(ctx context.Context, id string, status model.Status) error {
	if !status.Valid() {
		return util.ValidationError("Invalid status", map[string]any{"allowed": model.Statuses})
	}

	updated, err := d.Client.UpdateStatus(ctx, id, status)
	if err != nil {
		d.log.WithFields(logrus.Fields{
			"id":     id,
			"status": status,
			"kind":   util.KindOf(err),
		}).WithError(err).Error("status update failed")
		return err
	}

	d.State.ApplyStatus(updated.ID.String(), updated.Status)
	return nil
}

func (d *Dashboard) Logout(ctx context.Context) error {
	err := d.Client.Logout(ctx)
	d.State.Reset()
	return err
}

// Stats summarizes the loaded records as of now.
func (d *Dashboard) Stats() dto.ApplicationStatsDTO {
	return d.State.Stats(d.now())
}
