package cache

import (
	"Streamify/service"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewEngagementLocker,
	NewViewStorage,
	wire.Bind(new(service.ViewCounter), new(*ViewStorage)),
)
