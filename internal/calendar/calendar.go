// Package calendar renders upcoming congratulation dates as an iCalendar feed.
package calendar

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-assistant-bot/internal/addressbook"
	"github.com/tartampluch/go-assistant-bot/internal/config"
)

// Build returns an iCalendar document with one all-day event per entry,
// placed on the congratulation date. now stamps every event.
func Build(upcoming []addressbook.Upcoming, now time.Time) ([]byte, error) {
	// Handle case where no events are found.
	if len(upcoming) == 0 {
		// A stub keeps the output a valid VCALENDAR even when empty.
		return []byte(config.StubVCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	for _, u := range upcoming {
		event := ical.NewEvent()
		event.Props.SetText(config.PropUID, eventUID(u))
		event.Props.SetText(config.PropSummary, fmt.Sprintf(config.FallbackSummary, u.Record.Name().Value()))

		dtStartProp := ical.NewProp(config.PropDTStart)
		dtStartProp.SetDate(u.CongratulationDate)
		event.Props.Set(dtStartProp)
		event.Props.Set(dtStampProp)

		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompCalendar,
		config.LogKeyCount, len(upcoming),
		config.LogKeySizeBytes, buf.Len())
	return buf.Bytes(), nil
}

// eventUID is stable for a given contact and congratulation date.
func eventUID(u addressbook.Upcoming) string {
	input := fmt.Sprintf(config.FormatHashInput, u.Record.Name().Value(), u.CongratulationDate.Format(config.DateFormatFullDash))
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), config.ICalDomain)
}
