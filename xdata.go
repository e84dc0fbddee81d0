package dxfio

import (
	"io"

	"github.com/hailam/dxfio/codepair"
)

const (
	xdataString                 = 1000
	xdataApplicationName        = 1001
	xdataControlGroup           = 1002
	xdataLayer                  = 1003
	xdataBinaryData             = 1004
	xdataHandle                 = 1005
	xdataThreeReals             = 1010
	xdataWorldSpacePosition     = 1011
	xdataWorldSpaceDisplacement = 1012
	xdataWorldDirection         = 1013
	xdataReal                   = 1040
	xdataDistance               = 1041
	xdataScaleFactor            = 1042
	xdataInteger                = 1070
	xdataLong                   = 1071
)

// XData is one block of extended data: the registered application it belongs
// to and its ordered items.
type XData struct {
	ApplicationName string
	Items           []XDataItem
}

// XDataItem is one piece of extended data. ControlGroup is the only
// recursive variant.
type XDataItem interface {
	write(w codepair.PairWriter) error
}

type XDataStr struct{ Value string }
type XDataControlGroup struct{ Items []XDataItem }
type XDataLayerName struct{ Name string }
type XDataBinary struct{ Data []byte }
type XDataHandle struct{ Handle uint32 }
type XDataThreeReals struct{ X, Y, Z float64 }
type XDataWorldSpacePosition struct{ Location Point }
type XDataWorldSpaceDisplacement struct{ Location Point }
type XDataWorldDirection struct{ Direction Vector }
type XDataReal struct{ Value float64 }
type XDataDistance struct{ Value float64 }
type XDataScaleFactor struct{ Value float64 }
type XDataInteger struct{ Value int16 }
type XDataLong struct{ Value int32 }

// readXData gathers the items following a 1001/<appname> pair. It stops at
// a 0-code pair (end of the owning object), at the next 1001 pair, or at a
// sub-1000 pair, pushing the boundary pair back for the caller; end of
// stream just returns what was gathered.
func readXData(applicationName string, iter *codepair.PutBack) (XData, error) {
	xdata := XData{ApplicationName: applicationName}
	for {
		pair, err := iter.Next()
		if err != nil {
			if err == io.EOF {
				return xdata, nil
			}
			return xdata, err
		}
		if pair.Code == 0 || pair.Code == xdataApplicationName || pair.Code < xdataString {
			iter.Put(pair)
			return xdata, nil
		}
		item, err := readXDataItem(pair, iter)
		if err != nil {
			return xdata, err
		}
		xdata.Items = append(xdata.Items, item)
	}
}

func readXDataItem(pair codepair.CodePair, iter *codepair.PutBack) (XDataItem, error) {
	switch pair.Code {
	case xdataString:
		s, err := pair.AssertString()
		if err != nil {
			return nil, err
		}
		return &XDataStr{Value: s}, nil
	case xdataControlGroup:
		var items []XDataItem
		for {
			inner, err := iter.Next()
			if err != nil {
				if err == io.EOF {
					return nil, codepair.ErrUnexpectedEndOfInput
				}
				return nil, err
			}
			if inner.Code < xdataString {
				return nil, &codepair.UnexpectedCodePairError{Pair: inner, Message: "expected XDATA item"}
			}
			if inner.Code == xdataControlGroup {
				s, err := inner.AssertString()
				if err != nil {
					return nil, err
				}
				if s == "}" {
					break
				}
			}
			item, err := readXDataItem(inner, iter)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return &XDataControlGroup{Items: items}, nil
	case xdataLayer:
		s, err := pair.AssertString()
		if err != nil {
			return nil, err
		}
		return &XDataLayerName{Name: s}, nil
	case xdataBinaryData:
		s, err := pair.AssertString()
		if err != nil {
			return nil, err
		}
		data, err := codepair.ParseHex(s, pair.Offset)
		if err != nil {
			return nil, err
		}
		return &XDataBinary{Data: data}, nil
	case xdataHandle:
		h, err := pair.Handle()
		if err != nil {
			return nil, err
		}
		return &XDataHandle{Handle: h}, nil
	case xdataThreeReals:
		x, err := pair.AssertDouble()
		if err != nil {
			return nil, err
		}
		y, z, err := readTwoDoubles(iter, pair.Code)
		if err != nil {
			return nil, err
		}
		return &XDataThreeReals{X: x, Y: y, Z: z}, nil
	case xdataWorldSpacePosition:
		pt, err := readXDataPoint(pair, iter)
		if err != nil {
			return nil, err
		}
		return &XDataWorldSpacePosition{Location: pt}, nil
	case xdataWorldSpaceDisplacement:
		pt, err := readXDataPoint(pair, iter)
		if err != nil {
			return nil, err
		}
		return &XDataWorldSpaceDisplacement{Location: pt}, nil
	case xdataWorldDirection:
		pt, err := readXDataPoint(pair, iter)
		if err != nil {
			return nil, err
		}
		return &XDataWorldDirection{Direction: Vector(pt)}, nil
	case xdataReal:
		v, err := pair.AssertDouble()
		if err != nil {
			return nil, err
		}
		return &XDataReal{Value: v}, nil
	case xdataDistance:
		v, err := pair.AssertDouble()
		if err != nil {
			return nil, err
		}
		return &XDataDistance{Value: v}, nil
	case xdataScaleFactor:
		v, err := pair.AssertDouble()
		if err != nil {
			return nil, err
		}
		return &XDataScaleFactor{Value: v}, nil
	case xdataInteger:
		v, err := pair.AssertShort()
		if err != nil {
			return nil, err
		}
		return &XDataInteger{Value: v}, nil
	case xdataLong:
		v, err := pair.AssertInteger()
		if err != nil {
			return nil, err
		}
		return &XDataLong{Value: v}, nil
	default:
		return nil, &codepair.UnexpectedCodeError{Code: pair.Code, Offset: pair.Offset}
	}
}

// readTwoDoubles consumes the second and third pair of a triple-real item;
// both must carry the same group code as the first.
func readTwoDoubles(iter *codepair.PutBack, expectedCode int) (float64, float64, error) {
	a, err := readExpectedDouble(iter, expectedCode)
	if err != nil {
		return 0, 0, err
	}
	b, err := readExpectedDouble(iter, expectedCode)
	if err != nil {
		return 0, 0, err
	}
	return a, b, nil
}

func readExpectedDouble(iter *codepair.PutBack, expectedCode int) (float64, error) {
	pair, err := iter.Next()
	if err != nil {
		if err == io.EOF {
			return 0, codepair.ErrUnexpectedEndOfInput
		}
		return 0, err
	}
	if pair.Code != expectedCode {
		return 0, &codepair.UnexpectedCodeError{Code: pair.Code, Offset: pair.Offset}
	}
	return pair.AssertDouble()
}

func readXDataPoint(first codepair.CodePair, iter *codepair.PutBack) (Point, error) {
	x, err := first.AssertDouble()
	if err != nil {
		return Point{}, err
	}
	y, z, err := readTwoDoubles(iter, first.Code)
	if err != nil {
		return Point{}, err
	}
	return Point{X: x, Y: y, Z: z}, nil
}

// write emits the block. Extended data is not representable before R2000,
// so earlier target versions emit nothing.
func (x *XData) write(version AcadVersion, w codepair.PairWriter) error {
	if version < R2000 {
		return nil
	}
	if err := w.WriteCodePair(codepair.NewString(xdataApplicationName, x.ApplicationName)); err != nil {
		return err
	}
	for _, item := range x.Items {
		if err := item.write(w); err != nil {
			return err
		}
	}
	return nil
}

func (i *XDataStr) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewString(xdataString, i.Value))
}

func (i *XDataControlGroup) write(w codepair.PairWriter) error {
	if err := w.WriteCodePair(codepair.NewString(xdataControlGroup, "{")); err != nil {
		return err
	}
	for _, item := range i.Items {
		if err := item.write(w); err != nil {
			return err
		}
	}
	return w.WriteCodePair(codepair.NewString(xdataControlGroup, "}"))
}

func (i *XDataLayerName) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewString(xdataLayer, i.Name))
}

func (i *XDataBinary) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewString(xdataBinaryData, codepair.FormatHex(i.Data)))
}

func (i *XDataHandle) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewString(xdataHandle, codepair.FormatHandle(i.Handle)))
}

func writeTriple(w codepair.PairWriter, code int, x, y, z float64) error {
	for _, v := range []float64{x, y, z} {
		if err := w.WriteCodePair(codepair.NewDouble(code, v)); err != nil {
			return err
		}
	}
	return nil
}

func (i *XDataThreeReals) write(w codepair.PairWriter) error {
	return writeTriple(w, xdataThreeReals, i.X, i.Y, i.Z)
}

func (i *XDataWorldSpacePosition) write(w codepair.PairWriter) error {
	return writeTriple(w, xdataWorldSpacePosition, i.Location.X, i.Location.Y, i.Location.Z)
}

func (i *XDataWorldSpaceDisplacement) write(w codepair.PairWriter) error {
	return writeTriple(w, xdataWorldSpaceDisplacement, i.Location.X, i.Location.Y, i.Location.Z)
}

func (i *XDataWorldDirection) write(w codepair.PairWriter) error {
	return writeTriple(w, xdataWorldDirection, i.Direction.X, i.Direction.Y, i.Direction.Z)
}

func (i *XDataReal) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewDouble(xdataReal, i.Value))
}

func (i *XDataDistance) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewDouble(xdataDistance, i.Value))
}

func (i *XDataScaleFactor) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewDouble(xdataScaleFactor, i.Value))
}

func (i *XDataInteger) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewShort(xdataInteger, i.Value))
}

func (i *XDataLong) write(w codepair.PairWriter) error {
	return w.WriteCodePair(codepair.NewInt(xdataLong, i.Value))
}
