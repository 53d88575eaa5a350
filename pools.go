package lazyvec

import "sync"

var arrayOfBytesPool = &sync.Pool{
	New: func() any {
		return make([][]byte, 0, 64)
	},
}

var keyBytesPool = &sync.Pool{
	New: func() any {
		return make([]byte, 0, 32)
	},
}

var valueBytesPool = &sync.Pool{
	New: func() any {
		return make([]byte, 0, 65536)
	},
}
