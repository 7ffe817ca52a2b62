package wasm

// Opcode identifies an instruction. Single-byte opcodes use their byte value;
// opcodes on the 0xFC and 0xFD pages are prefix<<8 | sub-opcode.
type Opcode uint16

// Prefix bytes for the two-byte opcode pages.
const (
	PrefixMisc byte = 0xFC // saturating truncation, bulk memory, table ops
	PrefixSIMD byte = 0xFD // 128-bit SIMD
)

// Control, parametric, variable, table and memory instructions.
const (
	OpUnreachable  Opcode = 0x00
	OpNop          Opcode = 0x01
	OpBlock        Opcode = 0x02
	OpLoop         Opcode = 0x03
	OpIf           Opcode = 0x04
	OpElse         Opcode = 0x05
	OpEnd          Opcode = 0x0B
	OpBr           Opcode = 0x0C
	OpBrIf         Opcode = 0x0D
	OpBrTable      Opcode = 0x0E
	OpReturn       Opcode = 0x0F
	OpCall         Opcode = 0x10
	OpCallIndirect Opcode = 0x11
	OpDrop         Opcode = 0x1A
	OpSelect       Opcode = 0x1B
	OpSelectT      Opcode = 0x1C
	OpLocalGet     Opcode = 0x20
	OpLocalSet     Opcode = 0x21
	OpLocalTee     Opcode = 0x22
	OpGlobalGet    Opcode = 0x23
	OpGlobalSet    Opcode = 0x24
	OpTableGet     Opcode = 0x25
	OpTableSet     Opcode = 0x26
	OpI32Load      Opcode = 0x28
	OpI64Load      Opcode = 0x29
	OpF32Load      Opcode = 0x2A
	OpF64Load      Opcode = 0x2B
	OpI32Load8S    Opcode = 0x2C
	OpI32Load8U    Opcode = 0x2D
	OpI32Load16S   Opcode = 0x2E
	OpI32Load16U   Opcode = 0x2F
	OpI64Load8S    Opcode = 0x30
	OpI64Load8U    Opcode = 0x31
	OpI64Load16S   Opcode = 0x32
	OpI64Load16U   Opcode = 0x33
	OpI64Load32S   Opcode = 0x34
	OpI64Load32U   Opcode = 0x35
	OpI32Store     Opcode = 0x36
	OpI64Store     Opcode = 0x37
	OpF32Store     Opcode = 0x38
	OpF64Store     Opcode = 0x39
	OpI32Store8    Opcode = 0x3A
	OpI32Store16   Opcode = 0x3B
	OpI64Store8    Opcode = 0x3C
	OpI64Store16   Opcode = 0x3D
	OpI64Store32   Opcode = 0x3E
	OpMemorySize   Opcode = 0x3F
	OpMemoryGrow   Opcode = 0x40
)

// Numeric constants, comparisons, arithmetic and conversions.
const (
	OpI32Const          Opcode = 0x41
	OpI64Const          Opcode = 0x42
	OpF32Const          Opcode = 0x43
	OpF64Const          Opcode = 0x44
	OpI32Eqz            Opcode = 0x45
	OpI32Eq             Opcode = 0x46
	OpI32Ne             Opcode = 0x47
	OpI32LtS            Opcode = 0x48
	OpI32LtU            Opcode = 0x49
	OpI32GtS            Opcode = 0x4A
	OpI32GtU            Opcode = 0x4B
	OpI32LeS            Opcode = 0x4C
	OpI32LeU            Opcode = 0x4D
	OpI32GeS            Opcode = 0x4E
	OpI32GeU            Opcode = 0x4F
	OpI64Eqz            Opcode = 0x50
	OpI64Eq             Opcode = 0x51
	OpI64Ne             Opcode = 0x52
	OpI64LtS            Opcode = 0x53
	OpI64LtU            Opcode = 0x54
	OpI64GtS            Opcode = 0x55
	OpI64GtU            Opcode = 0x56
	OpI64LeS            Opcode = 0x57
	OpI64LeU            Opcode = 0x58
	OpI64GeS            Opcode = 0x59
	OpI64GeU            Opcode = 0x5A
	OpF32Eq             Opcode = 0x5B
	OpF32Ne             Opcode = 0x5C
	OpF32Lt             Opcode = 0x5D
	OpF32Gt             Opcode = 0x5E
	OpF32Le             Opcode = 0x5F
	OpF32Ge             Opcode = 0x60
	OpF64Eq             Opcode = 0x61
	OpF64Ne             Opcode = 0x62
	OpF64Lt             Opcode = 0x63
	OpF64Gt             Opcode = 0x64
	OpF64Le             Opcode = 0x65
	OpF64Ge             Opcode = 0x66
	OpI32Clz            Opcode = 0x67
	OpI32Ctz            Opcode = 0x68
	OpI32Popcnt         Opcode = 0x69
	OpI32Add            Opcode = 0x6A
	OpI32Sub            Opcode = 0x6B
	OpI32Mul            Opcode = 0x6C
	OpI32DivS           Opcode = 0x6D
	OpI32DivU           Opcode = 0x6E
	OpI32RemS           Opcode = 0x6F
	OpI32RemU           Opcode = 0x70
	OpI32And            Opcode = 0x71
	OpI32Or             Opcode = 0x72
	OpI32Xor            Opcode = 0x73
	OpI32Shl            Opcode = 0x74
	OpI32ShrS           Opcode = 0x75
	OpI32ShrU           Opcode = 0x76
	OpI32Rotl           Opcode = 0x77
	OpI32Rotr           Opcode = 0x78
	OpI64Clz            Opcode = 0x79
	OpI64Ctz            Opcode = 0x7A
	OpI64Popcnt         Opcode = 0x7B
	OpI64Add            Opcode = 0x7C
	OpI64Sub            Opcode = 0x7D
	OpI64Mul            Opcode = 0x7E
	OpI64DivS           Opcode = 0x7F
	OpI64DivU           Opcode = 0x80
	OpI64RemS           Opcode = 0x81
	OpI64RemU           Opcode = 0x82
	OpI64And            Opcode = 0x83
	OpI64Or             Opcode = 0x84
	OpI64Xor            Opcode = 0x85
	OpI64Shl            Opcode = 0x86
	OpI64ShrS           Opcode = 0x87
	OpI64ShrU           Opcode = 0x88
	OpI64Rotl           Opcode = 0x89
	OpI64Rotr           Opcode = 0x8A
	OpF32Abs            Opcode = 0x8B
	OpF32Neg            Opcode = 0x8C
	OpF32Ceil           Opcode = 0x8D
	OpF32Floor          Opcode = 0x8E
	OpF32Trunc          Opcode = 0x8F
	OpF32Nearest        Opcode = 0x90
	OpF32Sqrt           Opcode = 0x91
	OpF32Add            Opcode = 0x92
	OpF32Sub            Opcode = 0x93
	OpF32Mul            Opcode = 0x94
	OpF32Div            Opcode = 0x95
	OpF32Min            Opcode = 0x96
	OpF32Max            Opcode = 0x97
	OpF32Copysign       Opcode = 0x98
	OpF64Abs            Opcode = 0x99
	OpF64Neg            Opcode = 0x9A
	OpF64Ceil           Opcode = 0x9B
	OpF64Floor          Opcode = 0x9C
	OpF64Trunc          Opcode = 0x9D
	OpF64Nearest        Opcode = 0x9E
	OpF64Sqrt           Opcode = 0x9F
	OpF64Add            Opcode = 0xA0
	OpF64Sub            Opcode = 0xA1
	OpF64Mul            Opcode = 0xA2
	OpF64Div            Opcode = 0xA3
	OpF64Min            Opcode = 0xA4
	OpF64Max            Opcode = 0xA5
	OpF64Copysign       Opcode = 0xA6
	OpI32WrapI64        Opcode = 0xA7
	OpI32TruncF32S      Opcode = 0xA8
	OpI32TruncF32U      Opcode = 0xA9
	OpI32TruncF64S      Opcode = 0xAA
	OpI32TruncF64U      Opcode = 0xAB
	OpI64ExtendI32S     Opcode = 0xAC
	OpI64ExtendI32U     Opcode = 0xAD
	OpI64TruncF32S      Opcode = 0xAE
	OpI64TruncF32U      Opcode = 0xAF
	OpI64TruncF64S      Opcode = 0xB0
	OpI64TruncF64U      Opcode = 0xB1
	OpF32ConvertI32S    Opcode = 0xB2
	OpF32ConvertI32U    Opcode = 0xB3
	OpF32ConvertI64S    Opcode = 0xB4
	OpF32ConvertI64U    Opcode = 0xB5
	OpF32DemoteF64      Opcode = 0xB6
	OpF64ConvertI32S    Opcode = 0xB7
	OpF64ConvertI32U    Opcode = 0xB8
	OpF64ConvertI64S    Opcode = 0xB9
	OpF64ConvertI64U    Opcode = 0xBA
	OpF64PromoteF32     Opcode = 0xBB
	OpI32ReinterpretF32 Opcode = 0xBC
	OpI64ReinterpretF64 Opcode = 0xBD
	OpF32ReinterpretI32 Opcode = 0xBE
	OpF64ReinterpretI64 Opcode = 0xBF
	OpI32Extend8S       Opcode = 0xC0
	OpI32Extend16S      Opcode = 0xC1
	OpI64Extend8S       Opcode = 0xC2
	OpI64Extend16S      Opcode = 0xC3
	OpI64Extend32S      Opcode = 0xC4
)

// Reference instructions.
const (
	OpRefNull   Opcode = 0xD0
	OpRefIsNull Opcode = 0xD1
	OpRefFunc   Opcode = 0xD2
)

// 0xFC page.
const (
	OpI32TruncSatF32S Opcode = 0xFC00
	OpI32TruncSatF32U Opcode = 0xFC01
	OpI32TruncSatF64S Opcode = 0xFC02
	OpI32TruncSatF64U Opcode = 0xFC03
	OpI64TruncSatF32S Opcode = 0xFC04
	OpI64TruncSatF32U Opcode = 0xFC05
	OpI64TruncSatF64S Opcode = 0xFC06
	OpI64TruncSatF64U Opcode = 0xFC07
	OpMemoryInit      Opcode = 0xFC08
	OpDataDrop        Opcode = 0xFC09
	OpMemoryCopy      Opcode = 0xFC0A
	OpMemoryFill      Opcode = 0xFC0B
	OpTableInit       Opcode = 0xFC0C
	OpElemDrop        Opcode = 0xFC0D
	OpTableCopy       Opcode = 0xFC0E
	OpTableGrow       Opcode = 0xFC0F
	OpTableSize       Opcode = 0xFC10
	OpTableFill       Opcode = 0xFC11
)

// 0xFD page (SIMD).
const (
	OpV128Load                  Opcode = 0xFD00
	OpV128Load8x8S              Opcode = 0xFD01
	OpV128Load8x8U              Opcode = 0xFD02
	OpV128Load16x4S             Opcode = 0xFD03
	OpV128Load16x4U             Opcode = 0xFD04
	OpV128Load32x2S             Opcode = 0xFD05
	OpV128Load32x2U             Opcode = 0xFD06
	OpV128Load8Splat            Opcode = 0xFD07
	OpV128Load16Splat           Opcode = 0xFD08
	OpV128Load32Splat           Opcode = 0xFD09
	OpV128Load64Splat           Opcode = 0xFD0A
	OpV128Store                 Opcode = 0xFD0B
	OpV128Const                 Opcode = 0xFD0C
	OpI8x16Shuffle              Opcode = 0xFD0D
	OpI8x16Swizzle              Opcode = 0xFD0E
	OpI8x16Splat                Opcode = 0xFD0F
	OpI16x8Splat                Opcode = 0xFD10
	OpI32x4Splat                Opcode = 0xFD11
	OpI64x2Splat                Opcode = 0xFD12
	OpF32x4Splat                Opcode = 0xFD13
	OpF64x2Splat                Opcode = 0xFD14
	OpI8x16ExtractLaneS         Opcode = 0xFD15
	OpI8x16ExtractLaneU         Opcode = 0xFD16
	OpI8x16ReplaceLane          Opcode = 0xFD17
	OpI16x8ExtractLaneS         Opcode = 0xFD18
	OpI16x8ExtractLaneU         Opcode = 0xFD19
	OpI16x8ReplaceLane          Opcode = 0xFD1A
	OpI32x4ExtractLane          Opcode = 0xFD1B
	OpI32x4ReplaceLane          Opcode = 0xFD1C
	OpI64x2ExtractLane          Opcode = 0xFD1D
	OpI64x2ReplaceLane          Opcode = 0xFD1E
	OpF32x4ExtractLane          Opcode = 0xFD1F
	OpF32x4ReplaceLane          Opcode = 0xFD20
	OpF64x2ExtractLane          Opcode = 0xFD21
	OpF64x2ReplaceLane          Opcode = 0xFD22
	OpI8x16Eq                   Opcode = 0xFD23
	OpI8x16Ne                   Opcode = 0xFD24
	OpI8x16LtS                  Opcode = 0xFD25
	OpI8x16LtU                  Opcode = 0xFD26
	OpI8x16GtS                  Opcode = 0xFD27
	OpI8x16GtU                  Opcode = 0xFD28
	OpI8x16LeS                  Opcode = 0xFD29
	OpI8x16LeU                  Opcode = 0xFD2A
	OpI8x16GeS                  Opcode = 0xFD2B
	OpI8x16GeU                  Opcode = 0xFD2C
	OpI16x8Eq                   Opcode = 0xFD2D
	OpI16x8Ne                   Opcode = 0xFD2E
	OpI16x8LtS                  Opcode = 0xFD2F
	OpI16x8LtU                  Opcode = 0xFD30
	OpI16x8GtS                  Opcode = 0xFD31
	OpI16x8GtU                  Opcode = 0xFD32
	OpI16x8LeS                  Opcode = 0xFD33
	OpI16x8LeU                  Opcode = 0xFD34
	OpI16x8GeS                  Opcode = 0xFD35
	OpI16x8GeU                  Opcode = 0xFD36
	OpI32x4Eq                   Opcode = 0xFD37
	OpI32x4Ne                   Opcode = 0xFD38
	OpI32x4LtS                  Opcode = 0xFD39
	OpI32x4LtU                  Opcode = 0xFD3A
	OpI32x4GtS                  Opcode = 0xFD3B
	OpI32x4GtU                  Opcode = 0xFD3C
	OpI32x4LeS                  Opcode = 0xFD3D
	OpI32x4LeU                  Opcode = 0xFD3E
	OpI32x4GeS                  Opcode = 0xFD3F
	OpI32x4GeU                  Opcode = 0xFD40
	OpF32x4Eq                   Opcode = 0xFD41
	OpF32x4Ne                   Opcode = 0xFD42
	OpF32x4Lt                   Opcode = 0xFD43
	OpF32x4Gt                   Opcode = 0xFD44
	OpF32x4Le                   Opcode = 0xFD45
	OpF32x4Ge                   Opcode = 0xFD46
	OpF64x2Eq                   Opcode = 0xFD47
	OpF64x2Ne                   Opcode = 0xFD48
	OpF64x2Lt                   Opcode = 0xFD49
	OpF64x2Gt                   Opcode = 0xFD4A
	OpF64x2Le                   Opcode = 0xFD4B
	OpF64x2Ge                   Opcode = 0xFD4C
	OpV128Not                   Opcode = 0xFD4D
	OpV128And                   Opcode = 0xFD4E
	OpV128Andnot                Opcode = 0xFD4F
	OpV128Or                    Opcode = 0xFD50
	OpV128Xor                   Opcode = 0xFD51
	OpV128Bitselect             Opcode = 0xFD52
	OpV128AnyTrue               Opcode = 0xFD53
	OpV128Load8Lane             Opcode = 0xFD54
	OpV128Load16Lane            Opcode = 0xFD55
	OpV128Load32Lane            Opcode = 0xFD56
	OpV128Load64Lane            Opcode = 0xFD57
	OpV128Store8Lane            Opcode = 0xFD58
	OpV128Store16Lane           Opcode = 0xFD59
	OpV128Store32Lane           Opcode = 0xFD5A
	OpV128Store64Lane           Opcode = 0xFD5B
	OpV128Load32Zero            Opcode = 0xFD5C
	OpV128Load64Zero            Opcode = 0xFD5D
	OpF32x4DemoteF64x2Zero      Opcode = 0xFD5E
	OpF64x2PromoteLowF32x4      Opcode = 0xFD5F
	OpI8x16Abs                  Opcode = 0xFD60
	OpI8x16Neg                  Opcode = 0xFD61
	OpI8x16Popcnt               Opcode = 0xFD62
	OpI8x16AllTrue              Opcode = 0xFD63
	OpI8x16Bitmask              Opcode = 0xFD64
	OpI8x16NarrowI16x8S         Opcode = 0xFD65
	OpI8x16NarrowI16x8U         Opcode = 0xFD66
	OpF32x4Ceil                 Opcode = 0xFD67
	OpF32x4Floor                Opcode = 0xFD68
	OpF32x4Trunc                Opcode = 0xFD69
	OpF32x4Nearest              Opcode = 0xFD6A
	OpI8x16Shl                  Opcode = 0xFD6B
	OpI8x16ShrS                 Opcode = 0xFD6C
	OpI8x16ShrU                 Opcode = 0xFD6D
	OpI8x16Add                  Opcode = 0xFD6E
	OpI8x16AddSatS              Opcode = 0xFD6F
	OpI8x16AddSatU              Opcode = 0xFD70
	OpI8x16Sub                  Opcode = 0xFD71
	OpI8x16SubSatS              Opcode = 0xFD72
	OpI8x16SubSatU              Opcode = 0xFD73
	OpF64x2Ceil                 Opcode = 0xFD74
	OpF64x2Floor                Opcode = 0xFD75
	OpI8x16MinS                 Opcode = 0xFD76
	OpI8x16MinU                 Opcode = 0xFD77
	OpI8x16MaxS                 Opcode = 0xFD78
	OpI8x16MaxU                 Opcode = 0xFD79
	OpF64x2Trunc                Opcode = 0xFD7A
	OpI8x16AvgrU                Opcode = 0xFD7B
	OpI16x8ExtaddPairwiseI8x16S Opcode = 0xFD7C
	OpI16x8ExtaddPairwiseI8x16U Opcode = 0xFD7D
	OpI32x4ExtaddPairwiseI16x8S Opcode = 0xFD7E
	OpI32x4ExtaddPairwiseI16x8U Opcode = 0xFD7F
	OpI16x8Abs                  Opcode = 0xFD80
	OpI16x8Neg                  Opcode = 0xFD81
	OpI16x8Q15mulrSatS          Opcode = 0xFD82
	OpI16x8AllTrue              Opcode = 0xFD83
	OpI16x8Bitmask              Opcode = 0xFD84
	OpI16x8NarrowI32x4S         Opcode = 0xFD85
	OpI16x8NarrowI32x4U         Opcode = 0xFD86
	OpI16x8ExtendLowI8x16S      Opcode = 0xFD87
	OpI16x8ExtendHighI8x16S     Opcode = 0xFD88
	OpI16x8ExtendLowI8x16U      Opcode = 0xFD89
	OpI16x8ExtendHighI8x16U     Opcode = 0xFD8A
	OpI16x8Shl                  Opcode = 0xFD8B
	OpI16x8ShrS                 Opcode = 0xFD8C
	OpI16x8ShrU                 Opcode = 0xFD8D
	OpI16x8Add                  Opcode = 0xFD8E
	OpI16x8AddSatS              Opcode = 0xFD8F
	OpI16x8AddSatU              Opcode = 0xFD90
	OpI16x8Sub                  Opcode = 0xFD91
	OpI16x8SubSatS              Opcode = 0xFD92
	OpI16x8SubSatU              Opcode = 0xFD93
	OpF64x2Nearest              Opcode = 0xFD94
	OpI16x8Mul                  Opcode = 0xFD95
	OpI16x8MinS                 Opcode = 0xFD96
	OpI16x8MinU                 Opcode = 0xFD97
	OpI16x8MaxS                 Opcode = 0xFD98
	OpI16x8MaxU                 Opcode = 0xFD99
	OpI16x8AvgrU                Opcode = 0xFD9B
	OpI16x8ExtmulLowI8x16S      Opcode = 0xFD9C
	OpI16x8ExtmulHighI8x16S     Opcode = 0xFD9D
	OpI16x8ExtmulLowI8x16U      Opcode = 0xFD9E
	OpI16x8ExtmulHighI8x16U     Opcode = 0xFD9F
	OpI32x4Abs                  Opcode = 0xFDA0
	OpI32x4Neg                  Opcode = 0xFDA1
	OpI32x4AllTrue              Opcode = 0xFDA3
	OpI32x4Bitmask              Opcode = 0xFDA4
	OpI32x4ExtendLowI16x8S      Opcode = 0xFDA7
	OpI32x4ExtendHighI16x8S     Opcode = 0xFDA8
	OpI32x4ExtendLowI16x8U      Opcode = 0xFDA9
	OpI32x4ExtendHighI16x8U     Opcode = 0xFDAA
	OpI32x4Shl                  Opcode = 0xFDAB
	OpI32x4ShrS                 Opcode = 0xFDAC
	OpI32x4ShrU                 Opcode = 0xFDAD
	OpI32x4Add                  Opcode = 0xFDAE
	OpI32x4Sub                  Opcode = 0xFDB1
	OpI32x4Mul                  Opcode = 0xFDB5
	OpI32x4MinS                 Opcode = 0xFDB6
	OpI32x4MinU                 Opcode = 0xFDB7
	OpI32x4MaxS                 Opcode = 0xFDB8
	OpI32x4MaxU                 Opcode = 0xFDB9
	OpI32x4DotI16x8S            Opcode = 0xFDBA
	OpI32x4ExtmulLowI16x8S      Opcode = 0xFDBC
	OpI32x4ExtmulHighI16x8S     Opcode = 0xFDBD
	OpI32x4ExtmulLowI16x8U      Opcode = 0xFDBE
	OpI32x4ExtmulHighI16x8U     Opcode = 0xFDBF
	OpI64x2Abs                  Opcode = 0xFDC0
	OpI64x2Neg                  Opcode = 0xFDC1
	OpI64x2AllTrue              Opcode = 0xFDC3
	OpI64x2Bitmask              Opcode = 0xFDC4
	OpI64x2ExtendLowI32x4S      Opcode = 0xFDC7
	OpI64x2ExtendHighI32x4S     Opcode = 0xFDC8
	OpI64x2ExtendLowI32x4U      Opcode = 0xFDC9
	OpI64x2ExtendHighI32x4U     Opcode = 0xFDCA
	OpI64x2Shl                  Opcode = 0xFDCB
	OpI64x2ShrS                 Opcode = 0xFDCC
	OpI64x2ShrU                 Opcode = 0xFDCD
	OpI64x2Add                  Opcode = 0xFDCE
	OpI64x2Sub                  Opcode = 0xFDD1
	OpI64x2Mul                  Opcode = 0xFDD5
	OpI64x2Eq                   Opcode = 0xFDD6
	OpI64x2Ne                   Opcode = 0xFDD7
	OpI64x2LtS                  Opcode = 0xFDD8
	OpI64x2GtS                  Opcode = 0xFDD9
	OpI64x2LeS                  Opcode = 0xFDDA
	OpI64x2GeS                  Opcode = 0xFDDB
	OpI64x2ExtmulLowI32x4S      Opcode = 0xFDDC
	OpI64x2ExtmulHighI32x4S     Opcode = 0xFDDD
	OpI64x2ExtmulLowI32x4U      Opcode = 0xFDDE
	OpI64x2ExtmulHighI32x4U     Opcode = 0xFDDF
	OpF32x4Abs                  Opcode = 0xFDE0
	OpF32x4Neg                  Opcode = 0xFDE1
	OpF32x4Sqrt                 Opcode = 0xFDE3
	OpF32x4Add                  Opcode = 0xFDE4
	OpF32x4Sub                  Opcode = 0xFDE5
	OpF32x4Mul                  Opcode = 0xFDE6
	OpF32x4Div                  Opcode = 0xFDE7
	OpF32x4Min                  Opcode = 0xFDE8
	OpF32x4Max                  Opcode = 0xFDE9
	OpF32x4Pmin                 Opcode = 0xFDEA
	OpF32x4Pmax                 Opcode = 0xFDEB
	OpF64x2Abs                  Opcode = 0xFDEC
	OpF64x2Neg                  Opcode = 0xFDED
	OpF64x2Sqrt                 Opcode = 0xFDEF
	OpF64x2Add                  Opcode = 0xFDF0
	OpF64x2Sub                  Opcode = 0xFDF1
	OpF64x2Mul                  Opcode = 0xFDF2
	OpF64x2Div                  Opcode = 0xFDF3
	OpF64x2Min                  Opcode = 0xFDF4
	OpF64x2Max                  Opcode = 0xFDF5
	OpF64x2Pmin                 Opcode = 0xFDF6
	OpF64x2Pmax                 Opcode = 0xFDF7
	OpI32x4TruncSatF32x4S       Opcode = 0xFDF8
	OpI32x4TruncSatF32x4U       Opcode = 0xFDF9
	OpF32x4ConvertI32x4S        Opcode = 0xFDFA
	OpF32x4ConvertI32x4U        Opcode = 0xFDFB
	OpI32x4TruncSatF64x2SZero   Opcode = 0xFDFC
	OpI32x4TruncSatF64x2UZero   Opcode = 0xFDFD
	OpF64x2ConvertLowI32x4S     Opcode = 0xFDFE
	OpF64x2ConvertLowI32x4U     Opcode = 0xFDFF
)

type immKind uint8

const (
	immNone immKind = iota
	immBlock
	immLabel
	immBrTable
	immCall
	immCallIndirect
	immLocal
	immGlobal
	immTable
	immTableInit
	immTableCopy
	immElem
	immData
	immMemoryInit
	immMemoryCopy
	immMemoryIdx
	immMemArg
	immMemLane
	immLane
	immShuffle
	immI32
	immI64
	immF32
	immF64
	immV128
	immRefNull
	immRefFunc
	immSelectType
)

type opInfo struct {
	name string
	imm  immKind
}

var opcodeTable = map[Opcode]opInfo{
	OpUnreachable:               {"unreachable", immNone},
	OpNop:                       {"nop", immNone},
	OpBlock:                     {"block", immBlock},
	OpLoop:                      {"loop", immBlock},
	OpIf:                        {"if", immBlock},
	OpElse:                      {"else", immNone},
	OpEnd:                       {"end", immNone},
	OpBr:                        {"br", immLabel},
	OpBrIf:                      {"br_if", immLabel},
	OpBrTable:                   {"br_table", immBrTable},
	OpReturn:                    {"return", immNone},
	OpCall:                      {"call", immCall},
	OpCallIndirect:              {"call_indirect", immCallIndirect},
	OpDrop:                      {"drop", immNone},
	OpSelect:                    {"select", immNone},
	OpSelectT:                   {"select", immSelectType},
	OpLocalGet:                  {"local.get", immLocal},
	OpLocalSet:                  {"local.set", immLocal},
	OpLocalTee:                  {"local.tee", immLocal},
	OpGlobalGet:                 {"global.get", immGlobal},
	OpGlobalSet:                 {"global.set", immGlobal},
	OpTableGet:                  {"table.get", immTable},
	OpTableSet:                  {"table.set", immTable},
	OpI32Load:                   {"i32.load", immMemArg},
	OpI64Load:                   {"i64.load", immMemArg},
	OpF32Load:                   {"f32.load", immMemArg},
	OpF64Load:                   {"f64.load", immMemArg},
	OpI32Load8S:                 {"i32.load8_s", immMemArg},
	OpI32Load8U:                 {"i32.load8_u", immMemArg},
	OpI32Load16S:                {"i32.load16_s", immMemArg},
	OpI32Load16U:                {"i32.load16_u", immMemArg},
	OpI64Load8S:                 {"i64.load8_s", immMemArg},
	OpI64Load8U:                 {"i64.load8_u", immMemArg},
	OpI64Load16S:                {"i64.load16_s", immMemArg},
	OpI64Load16U:                {"i64.load16_u", immMemArg},
	OpI64Load32S:                {"i64.load32_s", immMemArg},
	OpI64Load32U:                {"i64.load32_u", immMemArg},
	OpI32Store:                  {"i32.store", immMemArg},
	OpI64Store:                  {"i64.store", immMemArg},
	OpF32Store:                  {"f32.store", immMemArg},
	OpF64Store:                  {"f64.store", immMemArg},
	OpI32Store8:                 {"i32.store8", immMemArg},
	OpI32Store16:                {"i32.store16", immMemArg},
	OpI64Store8:                 {"i64.store8", immMemArg},
	OpI64Store16:                {"i64.store16", immMemArg},
	OpI64Store32:                {"i64.store32", immMemArg},
	OpMemorySize:                {"memory.size", immMemoryIdx},
	OpMemoryGrow:                {"memory.grow", immMemoryIdx},
	OpI32Const:                  {"i32.const", immI32},
	OpI64Const:                  {"i64.const", immI64},
	OpF32Const:                  {"f32.const", immF32},
	OpF64Const:                  {"f64.const", immF64},
	OpI32Eqz:                    {"i32.eqz", immNone},
	OpI32Eq:                     {"i32.eq", immNone},
	OpI32Ne:                     {"i32.ne", immNone},
	OpI32LtS:                    {"i32.lt_s", immNone},
	OpI32LtU:                    {"i32.lt_u", immNone},
	OpI32GtS:                    {"i32.gt_s", immNone},
	OpI32GtU:                    {"i32.gt_u", immNone},
	OpI32LeS:                    {"i32.le_s", immNone},
	OpI32LeU:                    {"i32.le_u", immNone},
	OpI32GeS:                    {"i32.ge_s", immNone},
	OpI32GeU:                    {"i32.ge_u", immNone},
	OpI64Eqz:                    {"i64.eqz", immNone},
	OpI64Eq:                     {"i64.eq", immNone},
	OpI64Ne:                     {"i64.ne", immNone},
	OpI64LtS:                    {"i64.lt_s", immNone},
	OpI64LtU:                    {"i64.lt_u", immNone},
	OpI64GtS:                    {"i64.gt_s", immNone},
	OpI64GtU:                    {"i64.gt_u", immNone},
	OpI64LeS:                    {"i64.le_s", immNone},
	OpI64LeU:                    {"i64.le_u", immNone},
	OpI64GeS:                    {"i64.ge_s", immNone},
	OpI64GeU:                    {"i64.ge_u", immNone},
	OpF32Eq:                     {"f32.eq", immNone},
	OpF32Ne:                     {"f32.ne", immNone},
	OpF32Lt:                     {"f32.lt", immNone},
	OpF32Gt:                     {"f32.gt", immNone},
	OpF32Le:                     {"f32.le", immNone},
	OpF32Ge:                     {"f32.ge", immNone},
	OpF64Eq:                     {"f64.eq", immNone},
	OpF64Ne:                     {"f64.ne", immNone},
	OpF64Lt:                     {"f64.lt", immNone},
	OpF64Gt:                     {"f64.gt", immNone},
	OpF64Le:                     {"f64.le", immNone},
	OpF64Ge:                     {"f64.ge", immNone},
	OpI32Clz:                    {"i32.clz", immNone},
	OpI32Ctz:                    {"i32.ctz", immNone},
	OpI32Popcnt:                 {"i32.popcnt", immNone},
	OpI32Add:                    {"i32.add", immNone},
	OpI32Sub:                    {"i32.sub", immNone},
	OpI32Mul:                    {"i32.mul", immNone},
	OpI32DivS:                   {"i32.div_s", immNone},
	OpI32DivU:                   {"i32.div_u", immNone},
	OpI32RemS:                   {"i32.rem_s", immNone},
	OpI32RemU:                   {"i32.rem_u", immNone},
	OpI32And:                    {"i32.and", immNone},
	OpI32Or:                     {"i32.or", immNone},
	OpI32Xor:                    {"i32.xor", immNone},
	OpI32Shl:                    {"i32.shl", immNone},
	OpI32ShrS:                   {"i32.shr_s", immNone},
	OpI32ShrU:                   {"i32.shr_u", immNone},
	OpI32Rotl:                   {"i32.rotl", immNone},
	OpI32Rotr:                   {"i32.rotr", immNone},
	OpI64Clz:                    {"i64.clz", immNone},
	OpI64Ctz:                    {"i64.ctz", immNone},
	OpI64Popcnt:                 {"i64.popcnt", immNone},
	OpI64Add:                    {"i64.add", immNone},
	OpI64Sub:                    {"i64.sub", immNone},
	OpI64Mul:                    {"i64.mul", immNone},
	OpI64DivS:                   {"i64.div_s", immNone},
	OpI64DivU:                   {"i64.div_u", immNone},
	OpI64RemS:                   {"i64.rem_s", immNone},
	OpI64RemU:                   {"i64.rem_u", immNone},
	OpI64And:                    {"i64.and", immNone},
	OpI64Or:                     {"i64.or", immNone},
	OpI64Xor:                    {"i64.xor", immNone},
	OpI64Shl:                    {"i64.shl", immNone},
	OpI64ShrS:                   {"i64.shr_s", immNone},
	OpI64ShrU:                   {"i64.shr_u", immNone},
	OpI64Rotl:                   {"i64.rotl", immNone},
	OpI64Rotr:                   {"i64.rotr", immNone},
	OpF32Abs:                    {"f32.abs", immNone},
	OpF32Neg:                    {"f32.neg", immNone},
	OpF32Ceil:                   {"f32.ceil", immNone},
	OpF32Floor:                  {"f32.floor", immNone},
	OpF32Trunc:                  {"f32.trunc", immNone},
	OpF32Nearest:                {"f32.nearest", immNone},
	OpF32Sqrt:                   {"f32.sqrt", immNone},
	OpF32Add:                    {"f32.add", immNone},
	OpF32Sub:                    {"f32.sub", immNone},
	OpF32Mul:                    {"f32.mul", immNone},
	OpF32Div:                    {"f32.div", immNone},
	OpF32Min:                    {"f32.min", immNone},
	OpF32Max:                    {"f32.max", immNone},
	OpF32Copysign:               {"f32.copysign", immNone},
	OpF64Abs:                    {"f64.abs", immNone},
	OpF64Neg:                    {"f64.neg", immNone},
	OpF64Ceil:                   {"f64.ceil", immNone},
	OpF64Floor:                  {"f64.floor", immNone},
	OpF64Trunc:                  {"f64.trunc", immNone},
	OpF64Nearest:                {"f64.nearest", immNone},
	OpF64Sqrt:                   {"f64.sqrt", immNone},
	OpF64Add:                    {"f64.add", immNone},
	OpF64Sub:                    {"f64.sub", immNone},
	OpF64Mul:                    {"f64.mul", immNone},
	OpF64Div:                    {"f64.div", immNone},
	OpF64Min:                    {"f64.min", immNone},
	OpF64Max:                    {"f64.max", immNone},
	OpF64Copysign:               {"f64.copysign", immNone},
	OpI32WrapI64:                {"i32.wrap_i64", immNone},
	OpI32TruncF32S:              {"i32.trunc_f32_s", immNone},
	OpI32TruncF32U:              {"i32.trunc_f32_u", immNone},
	OpI32TruncF64S:              {"i32.trunc_f64_s", immNone},
	OpI32TruncF64U:              {"i32.trunc_f64_u", immNone},
	OpI64ExtendI32S:             {"i64.extend_i32_s", immNone},
	OpI64ExtendI32U:             {"i64.extend_i32_u", immNone},
	OpI64TruncF32S:              {"i64.trunc_f32_s", immNone},
	OpI64TruncF32U:              {"i64.trunc_f32_u", immNone},
	OpI64TruncF64S:              {"i64.trunc_f64_s", immNone},
	OpI64TruncF64U:              {"i64.trunc_f64_u", immNone},
	OpF32ConvertI32S:            {"f32.convert_i32_s", immNone},
	OpF32ConvertI32U:            {"f32.convert_i32_u", immNone},
	OpF32ConvertI64S:            {"f32.convert_i64_s", immNone},
	OpF32ConvertI64U:            {"f32.convert_i64_u", immNone},
	OpF32DemoteF64:              {"f32.demote_f64", immNone},
	OpF64ConvertI32S:            {"f64.convert_i32_s", immNone},
	OpF64ConvertI32U:            {"f64.convert_i32_u", immNone},
	OpF64ConvertI64S:            {"f64.convert_i64_s", immNone},
	OpF64ConvertI64U:            {"f64.convert_i64_u", immNone},
	OpF64PromoteF32:             {"f64.promote_f32", immNone},
	OpI32ReinterpretF32:         {"i32.reinterpret_f32", immNone},
	OpI64ReinterpretF64:         {"i64.reinterpret_f64", immNone},
	OpF32ReinterpretI32:         {"f32.reinterpret_i32", immNone},
	OpF64ReinterpretI64:         {"f64.reinterpret_i64", immNone},
	OpI32Extend8S:               {"i32.extend8_s", immNone},
	OpI32Extend16S:              {"i32.extend16_s", immNone},
	OpI64Extend8S:               {"i64.extend8_s", immNone},
	OpI64Extend16S:              {"i64.extend16_s", immNone},
	OpI64Extend32S:              {"i64.extend32_s", immNone},
	OpRefNull:                   {"ref.null", immRefNull},
	OpRefIsNull:                 {"ref.is_null", immNone},
	OpRefFunc:                   {"ref.func", immRefFunc},
	OpI32TruncSatF32S:           {"i32.trunc_sat_f32_s", immNone},
	OpI32TruncSatF32U:           {"i32.trunc_sat_f32_u", immNone},
	OpI32TruncSatF64S:           {"i32.trunc_sat_f64_s", immNone},
	OpI32TruncSatF64U:           {"i32.trunc_sat_f64_u", immNone},
	OpI64TruncSatF32S:           {"i64.trunc_sat_f32_s", immNone},
	OpI64TruncSatF32U:           {"i64.trunc_sat_f32_u", immNone},
	OpI64TruncSatF64S:           {"i64.trunc_sat_f64_s", immNone},
	OpI64TruncSatF64U:           {"i64.trunc_sat_f64_u", immNone},
	OpMemoryInit:                {"memory.init", immMemoryInit},
	OpDataDrop:                  {"data.drop", immData},
	OpMemoryCopy:                {"memory.copy", immMemoryCopy},
	OpMemoryFill:                {"memory.fill", immMemoryIdx},
	OpTableInit:                 {"table.init", immTableInit},
	OpElemDrop:                  {"elem.drop", immElem},
	OpTableCopy:                 {"table.copy", immTableCopy},
	OpTableGrow:                 {"table.grow", immTable},
	OpTableSize:                 {"table.size", immTable},
	OpTableFill:                 {"table.fill", immTable},
	OpV128Load:                  {"v128.load", immMemArg},
	OpV128Load8x8S:              {"v128.load8x8_s", immMemArg},
	OpV128Load8x8U:              {"v128.load8x8_u", immMemArg},
	OpV128Load16x4S:             {"v128.load16x4_s", immMemArg},
	OpV128Load16x4U:             {"v128.load16x4_u", immMemArg},
	OpV128Load32x2S:             {"v128.load32x2_s", immMemArg},
	OpV128Load32x2U:             {"v128.load32x2_u", immMemArg},
	OpV128Load8Splat:            {"v128.load8_splat", immMemArg},
	OpV128Load16Splat:           {"v128.load16_splat", immMemArg},
	OpV128Load32Splat:           {"v128.load32_splat", immMemArg},
	OpV128Load64Splat:           {"v128.load64_splat", immMemArg},
	OpV128Store:                 {"v128.store", immMemArg},
	OpV128Const:                 {"v128.const", immV128},
	OpI8x16Shuffle:              {"i8x16.shuffle", immShuffle},
	OpI8x16Swizzle:              {"i8x16.swizzle", immNone},
	OpI8x16Splat:                {"i8x16.splat", immNone},
	OpI16x8Splat:                {"i16x8.splat", immNone},
	OpI32x4Splat:                {"i32x4.splat", immNone},
	OpI64x2Splat:                {"i64x2.splat", immNone},
	OpF32x4Splat:                {"f32x4.splat", immNone},
	OpF64x2Splat:                {"f64x2.splat", immNone},
	OpI8x16ExtractLaneS:         {"i8x16.extract_lane_s", immLane},
	OpI8x16ExtractLaneU:         {"i8x16.extract_lane_u", immLane},
	OpI8x16ReplaceLane:          {"i8x16.replace_lane", immLane},
	OpI16x8ExtractLaneS:         {"i16x8.extract_lane_s", immLane},
	OpI16x8ExtractLaneU:         {"i16x8.extract_lane_u", immLane},
	OpI16x8ReplaceLane:          {"i16x8.replace_lane", immLane},
	OpI32x4ExtractLane:          {"i32x4.extract_lane", immLane},
	OpI32x4ReplaceLane:          {"i32x4.replace_lane", immLane},
	OpI64x2ExtractLane:          {"i64x2.extract_lane", immLane},
	OpI64x2ReplaceLane:          {"i64x2.replace_lane", immLane},
	OpF32x4ExtractLane:          {"f32x4.extract_lane", immLane},
	OpF32x4ReplaceLane:          {"f32x4.replace_lane", immLane},
	OpF64x2ExtractLane:          {"f64x2.extract_lane", immLane},
	OpF64x2ReplaceLane:          {"f64x2.replace_lane", immLane},
	OpI8x16Eq:                   {"i8x16.eq", immNone},
	OpI8x16Ne:                   {"i8x16.ne", immNone},
	OpI8x16LtS:                  {"i8x16.lt_s", immNone},
	OpI8x16LtU:                  {"i8x16.lt_u", immNone},
	OpI8x16GtS:                  {"i8x16.gt_s", immNone},
	OpI8x16GtU:                  {"i8x16.gt_u", immNone},
	OpI8x16LeS:                  {"i8x16.le_s", immNone},
	OpI8x16LeU:                  {"i8x16.le_u", immNone},
	OpI8x16GeS:                  {"i8x16.ge_s", immNone},
	OpI8x16GeU:                  {"i8x16.ge_u", immNone},
	OpI16x8Eq:                   {"i16x8.eq", immNone},
	OpI16x8Ne:                   {"i16x8.ne", immNone},
	OpI16x8LtS:                  {"i16x8.lt_s", immNone},
	OpI16x8LtU:                  {"i16x8.lt_u", immNone},
	OpI16x8GtS:                  {"i16x8.gt_s", immNone},
	OpI16x8GtU:                  {"i16x8.gt_u", immNone},
	OpI16x8LeS:                  {"i16x8.le_s", immNone},
	OpI16x8LeU:                  {"i16x8.le_u", immNone},
	OpI16x8GeS:                  {"i16x8.ge_s", immNone},
	OpI16x8GeU:                  {"i16x8.ge_u", immNone},
	OpI32x4Eq:                   {"i32x4.eq", immNone},
	OpI32x4Ne:                   {"i32x4.ne", immNone},
	OpI32x4LtS:                  {"i32x4.lt_s", immNone},
	OpI32x4LtU:                  {"i32x4.lt_u", immNone},
	OpI32x4GtS:                  {"i32x4.gt_s", immNone},
	OpI32x4GtU:                  {"i32x4.gt_u", immNone},
	OpI32x4LeS:                  {"i32x4.le_s", immNone},
	OpI32x4LeU:                  {"i32x4.le_u", immNone},
	OpI32x4GeS:                  {"i32x4.ge_s", immNone},
	OpI32x4GeU:                  {"i32x4.ge_u", immNone},
	OpF32x4Eq:                   {"f32x4.eq", immNone},
	OpF32x4Ne:                   {"f32x4.ne", immNone},
	OpF32x4Lt:                   {"f32x4.lt", immNone},
	OpF32x4Gt:                   {"f32x4.gt", immNone},
	OpF32x4Le:                   {"f32x4.le", immNone},
	OpF32x4Ge:                   {"f32x4.ge", immNone},
	OpF64x2Eq:                   {"f64x2.eq", immNone},
	OpF64x2Ne:                   {"f64x2.ne", immNone},
	OpF64x2Lt:                   {"f64x2.lt", immNone},
	OpF64x2Gt:                   {"f64x2.gt", immNone},
	OpF64x2Le:                   {"f64x2.le", immNone},
	OpF64x2Ge:                   {"f64x2.ge", immNone},
	OpV128Not:                   {"v128.not", immNone},
	OpV128And:                   {"v128.and", immNone},
	OpV128Andnot:                {"v128.andnot", immNone},
	OpV128Or:                    {"v128.or", immNone},
	OpV128Xor:                   {"v128.xor", immNone},
	OpV128Bitselect:             {"v128.bitselect", immNone},
	OpV128AnyTrue:               {"v128.any_true", immNone},
	OpV128Load8Lane:             {"v128.load8_lane", immMemLane},
	OpV128Load16Lane:            {"v128.load16_lane", immMemLane},
	OpV128Load32Lane:            {"v128.load32_lane", immMemLane},
	OpV128Load64Lane:            {"v128.load64_lane", immMemLane},
	OpV128Store8Lane:            {"v128.store8_lane", immMemLane},
	OpV128Store16Lane:           {"v128.store16_lane", immMemLane},
	OpV128Store32Lane:           {"v128.store32_lane", immMemLane},
	OpV128Store64Lane:           {"v128.store64_lane", immMemLane},
	OpV128Load32Zero:            {"v128.load32_zero", immMemArg},
	OpV128Load64Zero:            {"v128.load64_zero", immMemArg},
	OpF32x4DemoteF64x2Zero:      {"f32x4.demote_f64x2_zero", immNone},
	OpF64x2PromoteLowF32x4:      {"f64x2.promote_low_f32x4", immNone},
	OpI8x16Abs:                  {"i8x16.abs", immNone},
	OpI8x16Neg:                  {"i8x16.neg", immNone},
	OpI8x16Popcnt:               {"i8x16.popcnt", immNone},
	OpI8x16AllTrue:              {"i8x16.all_true", immNone},
	OpI8x16Bitmask:              {"i8x16.bitmask", immNone},
	OpI8x16NarrowI16x8S:         {"i8x16.narrow_i16x8_s", immNone},
	OpI8x16NarrowI16x8U:         {"i8x16.narrow_i16x8_u", immNone},
	OpF32x4Ceil:                 {"f32x4.ceil", immNone},
	OpF32x4Floor:                {"f32x4.floor", immNone},
	OpF32x4Trunc:                {"f32x4.trunc", immNone},
	OpF32x4Nearest:              {"f32x4.nearest", immNone},
	OpI8x16Shl:                  {"i8x16.shl", immNone},
	OpI8x16ShrS:                 {"i8x16.shr_s", immNone},
	OpI8x16ShrU:                 {"i8x16.shr_u", immNone},
	OpI8x16Add:                  {"i8x16.add", immNone},
	OpI8x16AddSatS:              {"i8x16.add_sat_s", immNone},
	OpI8x16AddSatU:              {"i8x16.add_sat_u", immNone},
	OpI8x16Sub:                  {"i8x16.sub", immNone},
	OpI8x16SubSatS:              {"i8x16.sub_sat_s", immNone},
	OpI8x16SubSatU:              {"i8x16.sub_sat_u", immNone},
	OpF64x2Ceil:                 {"f64x2.ceil", immNone},
	OpF64x2Floor:                {"f64x2.floor", immNone},
	OpI8x16MinS:                 {"i8x16.min_s", immNone},
	OpI8x16MinU:                 {"i8x16.min_u", immNone},
	OpI8x16MaxS:                 {"i8x16.max_s", immNone},
	OpI8x16MaxU:                 {"i8x16.max_u", immNone},
	OpF64x2Trunc:                {"f64x2.trunc", immNone},
	OpI8x16AvgrU:                {"i8x16.avgr_u", immNone},
	OpI16x8ExtaddPairwiseI8x16S: {"i16x8.extadd_pairwise_i8x16_s", immNone},
	OpI16x8ExtaddPairwiseI8x16U: {"i16x8.extadd_pairwise_i8x16_u", immNone},
	OpI32x4ExtaddPairwiseI16x8S: {"i32x4.extadd_pairwise_i16x8_s", immNone},
	OpI32x4ExtaddPairwiseI16x8U: {"i32x4.extadd_pairwise_i16x8_u", immNone},
	OpI16x8Abs:                  {"i16x8.abs", immNone},
	OpI16x8Neg:                  {"i16x8.neg", immNone},
	OpI16x8Q15mulrSatS:          {"i16x8.q15mulr_sat_s", immNone},
	OpI16x8AllTrue:              {"i16x8.all_true", immNone},
	OpI16x8Bitmask:              {"i16x8.bitmask", immNone},
	OpI16x8NarrowI32x4S:         {"i16x8.narrow_i32x4_s", immNone},
	OpI16x8NarrowI32x4U:         {"i16x8.narrow_i32x4_u", immNone},
	OpI16x8ExtendLowI8x16S:      {"i16x8.extend_low_i8x16_s", immNone},
	OpI16x8ExtendHighI8x16S:     {"i16x8.extend_high_i8x16_s", immNone},
	OpI16x8ExtendLowI8x16U:      {"i16x8.extend_low_i8x16_u", immNone},
	OpI16x8ExtendHighI8x16U:     {"i16x8.extend_high_i8x16_u", immNone},
	OpI16x8Shl:                  {"i16x8.shl", immNone},
	OpI16x8ShrS:                 {"i16x8.shr_s", immNone},
	OpI16x8ShrU:                 {"i16x8.shr_u", immNone},
	OpI16x8Add:                  {"i16x8.add", immNone},
	OpI16x8AddSatS:              {"i16x8.add_sat_s", immNone},
	OpI16x8AddSatU:              {"i16x8.add_sat_u", immNone},
	OpI16x8Sub:                  {"i16x8.sub", immNone},
	OpI16x8SubSatS:              {"i16x8.sub_sat_s", immNone},
	OpI16x8SubSatU:              {"i16x8.sub_sat_u", immNone},
	OpF64x2Nearest:              {"f64x2.nearest", immNone},
	OpI16x8Mul:                  {"i16x8.mul", immNone},
	OpI16x8MinS:                 {"i16x8.min_s", immNone},
	OpI16x8MinU:                 {"i16x8.min_u", immNone},
	OpI16x8MaxS:                 {"i16x8.max_s", immNone},
	OpI16x8MaxU:                 {"i16x8.max_u", immNone},
	OpI16x8AvgrU:                {"i16x8.avgr_u", immNone},
	OpI16x8ExtmulLowI8x16S:      {"i16x8.extmul_low_i8x16_s", immNone},
	OpI16x8ExtmulHighI8x16S:     {"i16x8.extmul_high_i8x16_s", immNone},
	OpI16x8ExtmulLowI8x16U:      {"i16x8.extmul_low_i8x16_u", immNone},
	OpI16x8ExtmulHighI8x16U:     {"i16x8.extmul_high_i8x16_u", immNone},
	OpI32x4Abs:                  {"i32x4.abs", immNone},
	OpI32x4Neg:                  {"i32x4.neg", immNone},
	OpI32x4AllTrue:              {"i32x4.all_true", immNone},
	OpI32x4Bitmask:              {"i32x4.bitmask", immNone},
	OpI32x4ExtendLowI16x8S:      {"i32x4.extend_low_i16x8_s", immNone},
	OpI32x4ExtendHighI16x8S:     {"i32x4.extend_high_i16x8_s", immNone},
	OpI32x4ExtendLowI16x8U:      {"i32x4.extend_low_i16x8_u", immNone},
	OpI32x4ExtendHighI16x8U:     {"i32x4.extend_high_i16x8_u", immNone},
	OpI32x4Shl:                  {"i32x4.shl", immNone},
	OpI32x4ShrS:                 {"i32x4.shr_s", immNone},
	OpI32x4ShrU:                 {"i32x4.shr_u", immNone},
	OpI32x4Add:                  {"i32x4.add", immNone},
	OpI32x4Sub:                  {"i32x4.sub", immNone},
	OpI32x4Mul:                  {"i32x4.mul", immNone},
	OpI32x4MinS:                 {"i32x4.min_s", immNone},
	OpI32x4MinU:                 {"i32x4.min_u", immNone},
	OpI32x4MaxS:                 {"i32x4.max_s", immNone},
	OpI32x4MaxU:                 {"i32x4.max_u", immNone},
	OpI32x4DotI16x8S:            {"i32x4.dot_i16x8_s", immNone},
	OpI32x4ExtmulLowI16x8S:      {"i32x4.extmul_low_i16x8_s", immNone},
	OpI32x4ExtmulHighI16x8S:     {"i32x4.extmul_high_i16x8_s", immNone},
	OpI32x4ExtmulLowI16x8U:      {"i32x4.extmul_low_i16x8_u", immNone},
	OpI32x4ExtmulHighI16x8U:     {"i32x4.extmul_high_i16x8_u", immNone},
	OpI64x2Abs:                  {"i64x2.abs", immNone},
	OpI64x2Neg:                  {"i64x2.neg", immNone},
	OpI64x2AllTrue:              {"i64x2.all_true", immNone},
	OpI64x2Bitmask:              {"i64x2.bitmask", immNone},
	OpI64x2ExtendLowI32x4S:      {"i64x2.extend_low_i32x4_s", immNone},
	OpI64x2ExtendHighI32x4S:     {"i64x2.extend_high_i32x4_s", immNone},
	OpI64x2ExtendLowI32x4U:      {"i64x2.extend_low_i32x4_u", immNone},
	OpI64x2ExtendHighI32x4U:     {"i64x2.extend_high_i32x4_u", immNone},
	OpI64x2Shl:                  {"i64x2.shl", immNone},
	OpI64x2ShrS:                 {"i64x2.shr_s", immNone},
	OpI64x2ShrU:                 {"i64x2.shr_u", immNone},
	OpI64x2Add:                  {"i64x2.add", immNone},
	OpI64x2Sub:                  {"i64x2.sub", immNone},
	OpI64x2Mul:                  {"i64x2.mul", immNone},
	OpI64x2Eq:                   {"i64x2.eq", immNone},
	OpI64x2Ne:                   {"i64x2.ne", immNone},
	OpI64x2LtS:                  {"i64x2.lt_s", immNone},
	OpI64x2GtS:                  {"i64x2.gt_s", immNone},
	OpI64x2LeS:                  {"i64x2.le_s", immNone},
	OpI64x2GeS:                  {"i64x2.ge_s", immNone},
	OpI64x2ExtmulLowI32x4S:      {"i64x2.extmul_low_i32x4_s", immNone},
	OpI64x2ExtmulHighI32x4S:     {"i64x2.extmul_high_i32x4_s", immNone},
	OpI64x2ExtmulLowI32x4U:      {"i64x2.extmul_low_i32x4_u", immNone},
	OpI64x2ExtmulHighI32x4U:     {"i64x2.extmul_high_i32x4_u", immNone},
	OpF32x4Abs:                  {"f32x4.abs", immNone},
	OpF32x4Neg:                  {"f32x4.neg", immNone},
	OpF32x4Sqrt:                 {"f32x4.sqrt", immNone},
	OpF32x4Add:                  {"f32x4.add", immNone},
	OpF32x4Sub:                  {"f32x4.sub", immNone},
	OpF32x4Mul:                  {"f32x4.mul", immNone},
	OpF32x4Div:                  {"f32x4.div", immNone},
	OpF32x4Min:                  {"f32x4.min", immNone},
	OpF32x4Max:                  {"f32x4.max", immNone},
	OpF32x4Pmin:                 {"f32x4.pmin", immNone},
	OpF32x4Pmax:                 {"f32x4.pmax", immNone},
	OpF64x2Abs:                  {"f64x2.abs", immNone},
	OpF64x2Neg:                  {"f64x2.neg", immNone},
	OpF64x2Sqrt:                 {"f64x2.sqrt", immNone},
	OpF64x2Add:                  {"f64x2.add", immNone},
	OpF64x2Sub:                  {"f64x2.sub", immNone},
	OpF64x2Mul:                  {"f64x2.mul", immNone},
	OpF64x2Div:                  {"f64x2.div", immNone},
	OpF64x2Min:                  {"f64x2.min", immNone},
	OpF64x2Max:                  {"f64x2.max", immNone},
	OpF64x2Pmin:                 {"f64x2.pmin", immNone},
	OpF64x2Pmax:                 {"f64x2.pmax", immNone},
	OpI32x4TruncSatF32x4S:       {"i32x4.trunc_sat_f32x4_s", immNone},
	OpI32x4TruncSatF32x4U:       {"i32x4.trunc_sat_f32x4_u", immNone},
	OpF32x4ConvertI32x4S:        {"f32x4.convert_i32x4_s", immNone},
	OpF32x4ConvertI32x4U:        {"f32x4.convert_i32x4_u", immNone},
	OpI32x4TruncSatF64x2SZero:   {"i32x4.trunc_sat_f64x2_s_zero", immNone},
	OpI32x4TruncSatF64x2UZero:   {"i32x4.trunc_sat_f64x2_u_zero", immNone},
	OpF64x2ConvertLowI32x4S:     {"f64x2.convert_low_i32x4_s", immNone},
	OpF64x2ConvertLowI32x4U:     {"f64x2.convert_low_i32x4_u", immNone},
}
