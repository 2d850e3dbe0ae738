/*
   Copyright 2024 Joseph Cumines

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package goap

import "github.com/google/uuid"

// newQueryID stamps a planning query with a correlation id, attached to
// every log line the query emits and returned on its ActionPlan so
// callers can tie CLI/executor/metrics output back to a single query.
func newQueryID() string {
	return uuid.NewString()
}
