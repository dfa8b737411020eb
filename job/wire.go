package job

import (
	"Streamify/dao"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewScheduler,
	wire.Bind(new(Reconciler), new(*dao.CounterDAO)),
)
