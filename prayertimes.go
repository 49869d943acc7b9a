package dymo

import "context"

// PrayerSchedule lists the daily prayers plus sunrise for one day.
type PrayerSchedule struct {
	Fajr    string `json:"fajr"`
	Sunrise string `json:"sunrise"`
	Dhuhr   string `json:"dhuhr"`
	Asr     string `json:"asr"`
	Maghrib string `json:"maghrib"`
	Isha    string `json:"isha"`
}

// TimezonePrayerTimes pairs a timezone with its prayer schedule.
type TimezonePrayerTimes struct {
	Timezone string         `json:"timezone"`
	Times    PrayerSchedule `json:"prayerTimes"`
}

// PrayerTimesResult is the server's prayer times response.
type PrayerTimesResult struct {
	CountryCode string                `json:"countryCode"`
	Timezones   []TimezonePrayerTimes `json:"prayerTimesByTimezone"`
}

// PrayerTimes fetches the prayer schedule for the given coordinates.
func (c *Client) PrayerTimes(ctx context.Context, lat, lon float64, opts ...CallOption) (*PrayerTimesResult, error) {
	if lat < -90 || lat > 90 {
		return nil, &BadRequestError{Message: "latitude must be between -90 and 90"}
	}
	if lon < -180 || lon > 180 {
		return nil, &BadRequestError{Message: "longitude must be between -180 and 180"}
	}

	fallback, err := applyCallOptions(opts).fallbackJSON()
	if err != nil {
		return nil, err
	}

	var result PrayerTimesResult
	if err := c.api.PrayerTimes(ctx, lat, lon, fallback, &result); err != nil {
		return nil, wrapError(err)
	}
	return &result, nil
}
