package domain

import (
	"time"
)

// Operation log actions.
const (
	ActionLoad   = "load"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"
	ActionLogin  = "login"
)

// SysOprLog records one admin console action against the backend.
type SysOprLog struct {
	ID        int64     `json:"id,string" csv:"id"`
	OprName   string    `gorm:"index" json:"opr_name" csv:"operator"`
	OprIp     string    `json:"opr_ip" csv:"ip"`
	Resource  string    `gorm:"index;size:32" json:"resource" csv:"resource"`
	OptAction string    `gorm:"size:16" json:"opt_action" csv:"action"`
	TargetID  int64     `json:"target_id" csv:"target_id"`
	OptDesc   string    `json:"opt_desc" csv:"detail"`
	Success   bool      `json:"success" csv:"success"`
	OptTime   time.Time `gorm:"index" json:"opt_time" csv:"time"`
}

// TableName Specify table name
func (SysOprLog) TableName() string {
	return "sys_opr_log"
}
