package models

import "time"

// OnlineSession is a live PPPoE session as reported by the NAS and
// held in redis. It is never persisted to MySQL.
type OnlineSession struct {
	SubscriberID  string    `json:"subscriberId"`
	PPPoEUsername string    `json:"pppoe_username"`
	IPAddress     string    `json:"ipAddress"`
	StartedAt     time.Time `json:"startedAt"`
}
