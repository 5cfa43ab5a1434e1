package domain

// Tables lists the models migrated into the local database. The five site
// resources live in the backend and are not stored here.
var Tables = []interface{}{
	&SysOprLog{},
}
