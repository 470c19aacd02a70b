// SPDX-License-Identifier: Apache-2.0 OR MIT

package distributor

import (
	"github.com/chimeratk-go/regaccess/accessor"
	"github.com/chimeratk-go/regaccess/async/subscription"
)

func toSubscriptionValidity(v accessor.DataValidity) subscription.DataValidity {
	if v == accessor.Faulty {
		return subscription.Faulty
	}
	return subscription.Ok
}
